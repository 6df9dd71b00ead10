package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/client/router"
	"github.com/dmitrijs2005/docdesk/internal/client/views"
)

// searchTarget is the search route, preselecting docID when set.
func searchTarget(docID string) string {
	if docID == "" {
		return string(router.RouteSearch)
	}
	return string(router.RouteSearch) + "?" + url.Values{views.DocQueryParam: {docID}}.Encode()
}

func (a *App) showSearch(ctx context.Context, query url.Values) error {
	if err := a.search.Load(ctx, query); err != nil {
		return err
	}
	a.heading("Ask about a document")
	a.printSearch()
	return nil
}

func (a *App) printSearch() {
	docs := a.search.Documents()
	if len(docs) == 0 {
		a.info("No documents to ask about. Upload one first.")
		return
	}

	selected := a.search.Selected()
	for _, d := range docs {
		marker := "  "
		if d.ID == selected {
			marker = okColor.Sprint("> ")
		}
		fmt.Fprintf(a.out, "%s%s  %s\n", marker, dimColor.Sprintf("[%s]", d.ID), d.Title)
	}

	if title := a.search.SelectedTitle(); title != "" {
		a.info("Selected: %s", title)
	} else if selected != "" {
		a.warn("Selected document %s is not in your library.", selected)
	}

	if res, ok := a.search.Result(); ok {
		a.printAnswer(res)
	}
}

func (a *App) printAnswer(res models.QuestionResult) {
	headingColor.Fprintf(a.out, "\nQ: %s\n", res.Question)
	fmt.Fprintf(a.out, "%s\n", res.Answer)
	if len(res.Sources) == 0 {
		return
	}
	a.info("%s", dimColor.Sprint("Sources:"))
	for _, s := range res.Sources {
		fmt.Fprintf(a.out, "  #%d %s  %s\n", s.ChunkIndex, okColor.Sprint(views.FormatSimilarity(s.Similarity)), views.Preview(s.ChunkText))
	}
}

// Select changes the document questions go to.
func (a *App) Select(ctx context.Context, id string) error {
	if ok, err := a.enter(ctx, router.RouteSearch); !ok || err != nil {
		return err
	}
	a.search.Select(models.ID(id))
	a.setRoute(router.Resolve(searchTarget(id), a.session.State()))
	a.printSearch()
	return nil
}

// Ask sends question about the selected document and prints the answer.
func (a *App) Ask(ctx context.Context, question string) error {
	if ok, err := a.enter(ctx, router.RouteSearch); !ok || err != nil {
		return err
	}

	var res *models.QuestionResult
	err := spin(a.out, "thinking", func() error {
		var err error
		res, err = a.search.Ask(ctx, question)
		return err
	})
	if err != nil {
		return err
	}
	a.printAnswer(*res)
	return nil
}

// AskDocument selects docID and asks question about it in one go. It needs
// a restored session and never prompts for credentials.
func (a *App) AskDocument(ctx context.Context, docID, question string) error {
	if _, err := a.session.Require(); err != nil {
		return err
	}
	if err := a.Navigate(ctx, searchTarget(docID)); err != nil {
		return err
	}
	return a.Ask(ctx, question)
}
