// Package sync exports every note of a workspace as a markdown document
// with YAML front matter, to a local directory or an S3 bucket.
package sync

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	gosync "sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/kn/internal/api"
	"github.com/Paintersrp/kn/internal/markup"
	"github.com/Paintersrp/kn/internal/note"
	"github.com/Paintersrp/kn/utils"
)

const defaultWorkers = 4

type Source interface {
	ListNotes(ctx context.Context) ([]note.SidebarEntry, error)
	GetNote(ctx context.Context, id int64, opts api.GetOptions) (*note.Note, error)
}

// Sink stores one exported document under name.
type Sink interface {
	Put(ctx context.Context, name string, body []byte) error
}

type Failure struct {
	ID  int64
	Err error
}

type Report struct {
	Exported []string
	Failed   []Failure
	// Projects lists the distinct project titles seen, in first-seen order.
	Projects []string
}

type Exporter struct {
	src     Source
	sink    Sink
	log     zerolog.Logger
	workers int
}

func NewExporter(src Source, sink Sink, log zerolog.Logger) *Exporter {
	return &Exporter{src: src, sink: sink, log: log, workers: defaultWorkers}
}

// Run exports every note. A note that fails is recorded in the report and
// does not stop the others; only a failed listing is returned as an error.
func (e *Exporter) Run(ctx context.Context) (*Report, error) {
	entries, err := e.src.ListNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	type result struct {
		name    string
		project string
		err     error
		id      int64
	}

	jobs := make(chan note.SidebarEntry)
	results := make(chan result)

	var wg gosync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				name, project, err := e.export(ctx, entry)
				results <- result{name: name, project: project, err: err, id: entry.ID}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, entry := range entries {
			select {
			case jobs <- entry:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	report := &Report{}
	for r := range results {
		if r.err != nil {
			e.log.Warn().Err(r.err).Int64("id", r.id).Msg("note not exported")
			report.Failed = append(report.Failed, Failure{ID: r.id, Err: r.err})
			continue
		}
		report.Exported = append(report.Exported, r.name)
		if r.project != "" {
			report.Projects = utils.AppendIfNotExists(report.Projects, r.project)
		}
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (e *Exporter) export(ctx context.Context, entry note.SidebarEntry) (string, string, error) {
	n, err := e.src.GetNote(ctx, entry.ID, api.GetOptions{FullContent: true})
	if err != nil {
		return "", "", err
	}

	doc, err := Document(n)
	if err != nil {
		return "", "", err
	}

	name := FileName(entry.ID, n.Title)
	if err := e.sink.Put(ctx, name, doc); err != nil {
		return "", "", err
	}
	e.log.Debug().Int64("id", entry.ID).Str("name", name).Msg("note exported")

	project := ""
	if n.Project != nil {
		project = n.Project.Title
	}
	return name, project, nil
}

type frontMatter struct {
	ID        int64  `yaml:"id"`
	Title     string `yaml:"title"`
	Author    string `yaml:"author,omitempty"`
	Project   string `yaml:"project,omitempty"`
	Public    bool   `yaml:"public"`
	PublicURL string `yaml:"public_url,omitempty"`
	Created   string `yaml:"created,omitempty"`
}

// Document renders a note as markdown preceded by YAML front matter.
func Document(n *note.Note) ([]byte, error) {
	id, _ := n.Key()
	meta := frontMatter{
		ID:        id,
		Title:     n.Title,
		Author:    n.Author.Username,
		Public:    n.IsPublic,
		PublicURL: n.PublicURL,
	}
	if n.Project != nil {
		meta.Project = n.Project.Title
	}
	if created, ok := n.Created(); ok {
		meta.Created = created.Format(time.RFC3339)
	}

	head, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to encode front matter: %w", err)
	}
	body, err := markup.ToMarkdown(n.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to convert note %d: %w", id, err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(head)
	buf.WriteString("---\n\n")
	buf.WriteString(body)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

var unsafeName = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// FileName is the stable export name of a note: its id and a slug of its
// title.
func FileName(id int64, title string) string {
	slug := strings.Trim(unsafeName.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if slug == "" {
		return fmt.Sprintf("%d.md", id)
	}
	slug = utils.Truncate(slug, 60)
	slug = strings.TrimSuffix(slug, "…")
	return fmt.Sprintf("%d-%s.md", id, slug)
}
