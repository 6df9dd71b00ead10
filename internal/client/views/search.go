package views

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

// DocQueryParam names the query parameter that preselects a document,
// as in "/search?doc=7".
const DocQueryParam = "doc"

type SearchAPI interface {
	ListDocuments(ctx context.Context) ([]models.Document, error)
	AskQuestion(ctx context.Context, req models.QuestionRequest) (*models.QuestionResult, error)
}

// Search asks questions about one selected document.
type Search struct {
	api SearchAPI
	log logging.Logger

	mu       sync.RWMutex
	docs     []models.Document
	selected models.ID
	result   *models.QuestionResult

	loading busy
	asking  busy
}

func NewSearch(api SearchAPI, log logging.Logger) *Search {
	if log == nil {
		log = logging.Discard()
	}
	return &Search{api: api, log: log.With("view", "search")}
}

// Load fetches the documents to choose from. The selection comes from the
// doc query parameter when present, otherwise it falls back to the first
// document.
func (v *Search) Load(ctx context.Context, query url.Values) error {
	if err := v.loading.enter(); err != nil {
		return err
	}
	defer v.loading.leave()

	if seed := strings.TrimSpace(query.Get(DocQueryParam)); seed != "" {
		v.Select(models.ID(seed))
	}

	docs, err := v.api.ListDocuments(ctx)
	if err != nil {
		return fail(err, "failed to load documents")
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.docs = docs
	if v.selected == "" && len(docs) > 0 {
		v.selected = docs[0].ID
	}
	return nil
}

func (v *Search) Documents() []models.Document {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]models.Document, len(v.docs))
	copy(out, v.docs)
	return out
}

// Select changes the document questions are asked about and drops the
// previous answer.
func (v *Search) Select(id models.ID) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = id
	v.result = nil
}

func (v *Search) Selected() models.ID {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.selected
}

// SelectedTitle is the title of the selected document, or "" when it is not
// among the loaded documents.
func (v *Search) SelectedTitle() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, d := range v.docs {
		if d.ID == v.selected {
			return d.Title
		}
	}
	return ""
}

func (v *Search) Result() (models.QuestionResult, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.result == nil {
		return models.QuestionResult{}, false
	}
	return *v.result, true
}

// Ask submits question about the selected document. A response without an
// answer yields ErrNoAnswer; a failed request wraps ErrAskFailed.
func (v *Search) Ask(ctx context.Context, question string) (*models.QuestionResult, error) {
	question = strings.TrimSpace(question)
	docID := v.Selected()
	if question == "" || docID == "" {
		return nil, ErrQuestionRequired
	}

	if err := v.asking.enter(); err != nil {
		return nil, err
	}
	defer v.asking.leave()

	v.mu.Lock()
	v.result = nil
	v.mu.Unlock()

	res, err := v.api.AskQuestion(ctx, models.QuestionRequest{Question: question, DocumentID: docID})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAskFailed, err)
	}
	if strings.TrimSpace(res.Answer) == "" {
		return nil, ErrNoAnswer
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.selected != docID {
		// the user moved on while the request was in flight
		return res, nil
	}
	v.result = res
	v.log.Debug(ctx, "question answered", "document", docID, "sources", len(res.Sources))
	return res, nil
}

func (v *Search) Busy() bool {
	return v.loading.active() || v.asking.active()
}
