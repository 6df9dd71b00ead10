package models

// QuestionRequest is the body of POST /search/question.
type QuestionRequest struct {
	Question   string `json:"question"`
	DocumentID ID     `json:"document_id"`
}

// Source is one evidence snippet backing an answer.
type Source struct {
	ChunkIndex int     `json:"chunk_index"`
	Similarity float64 `json:"similarity"`
	ChunkText  string  `json:"chunk_text"`
}

// QuestionResult is the transient answer to a document-scoped question.
type QuestionResult struct {
	Question      string   `json:"question"`
	Answer        string   `json:"answer"`
	DocumentID    ID       `json:"document_id"`
	DocumentTitle string   `json:"document_title"`
	Sources       []Source `json:"sources"`
}
