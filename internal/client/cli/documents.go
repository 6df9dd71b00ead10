package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/client/router"
	"github.com/dmitrijs2005/docdesk/internal/client/views"
)

const dateLayout = "2006-01-02 15:04"

func (a *App) showDocuments(ctx context.Context) error {
	if err := a.docs.Load(ctx); err != nil {
		return err
	}
	a.heading("Documents")
	a.printDocuments(a.docs.Documents())
	return nil
}

func (a *App) printDocuments(docs []models.Document) {
	if len(docs) == 0 {
		a.info("No documents.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTYPE\tSIZE\tUPLOADED\tKEYWORDS")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.ID, d.Title, d.FileType, views.FormatFileSize(d.FileSize),
			formatDate(d.UploadedAt), strings.Join(d.Keywords, ", "))
	}
	tw.Flush()

	for _, d := range docs {
		if d.Summary == "" {
			continue
		}
		fmt.Fprintf(a.out, "%s %s\n", dimColor.Sprintf("[%s]", d.ID), views.Preview(d.Summary))
	}
}

func formatDate(t models.Timestamp) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

// Filter lists the documents whose title or filename contains term.
// An empty term lists everything.
func (a *App) Filter(ctx context.Context, term string) error {
	if ok, err := a.enter(ctx, router.RouteDocuments); !ok || err != nil {
		return err
	}
	docs := a.docs.Filter(term)
	if term != "" {
		a.heading("Documents matching %q", term)
	}
	a.printDocuments(docs)
	return nil
}

// Summary prints the full summary and the keywords of one document. The
// list only shows a preview.
func (a *App) Summary(ctx context.Context, id string) error {
	if ok, err := a.enter(ctx, router.RouteDocuments); !ok || err != nil {
		return err
	}
	d, ok := a.docs.Find(models.ID(id))
	if !ok {
		return views.ErrUnknownDocument
	}

	a.heading("%s", d.Title)
	if summary := strings.TrimSpace(d.Summary); summary != "" {
		fmt.Fprintln(a.out, summary)
	} else {
		a.info("No summary available.")
	}
	if len(d.Keywords) > 0 {
		a.info("Keywords: %s", strings.Join(d.Keywords, ", "))
	}
	return nil
}

// Upload sends the file at path with a byte progress bar.
func (a *App) Upload(ctx context.Context, path string) error {
	if ok, err := a.enter(ctx, router.RouteDocuments); !ok || err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	name := filepath.Base(path)
	bar := byteBar(a.out, info.Size(), name)
	err = a.docs.Upload(ctx, name, io.TeeReader(f, bar))
	_ = bar.Finish()
	if err != nil {
		return err
	}

	a.success("Uploaded %s", name)
	a.printDocuments(a.docs.Documents())
	return nil
}

// Delete removes a document after the user confirms it.
func (a *App) Delete(ctx context.Context, id string) error {
	if ok, err := a.enter(ctx, router.RouteDocuments); !ok || err != nil {
		return err
	}

	err := a.docs.Delete(ctx, models.ID(id), func(d models.Document) bool {
		return Confirm(a.reader, fmt.Sprintf("Delete %q? This cannot be undone.", d.Title), a.out)
	})
	if errors.Is(err, views.ErrDeleteCancelled) {
		a.info("Cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	a.success("Document deleted")
	a.printDocuments(a.docs.Documents())
	return nil
}

// ListDocuments prints the library once, narrowed to term when set.
func (a *App) ListDocuments(ctx context.Context, term string) error {
	if _, err := a.session.Require(); err != nil {
		return err
	}
	if err := a.docs.Load(ctx); err != nil {
		return err
	}
	a.printDocuments(a.docs.Filter(term))
	return nil
}
