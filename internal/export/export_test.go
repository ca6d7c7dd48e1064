package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
)

func TestStudyGuideWritesNamedFile(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, logger.New("error"))

	result := &job.Result{
		Pages: []job.PageResult{
			{Content: "First page text.", Summary: "Summary of page one."},
			{Content: "Second page text.", Summary: "Summary of page two."},
		},
		FullDocumentSummary: "The whole document in brief.",
		Flashcards: []job.Flashcard{
			{Question: "What is the theme?", Answer: "Learning."},
		},
	}

	path, err := e.StudyGuide(context.Background(), "job-42", result)
	if err != nil {
		t.Fatalf("StudyGuide() error: %v", err)
	}
	if filepath.Base(path) != "studyguide_job-42.docx" {
		t.Errorf("StudyGuide() path = %q, want studyguide_job-42.docx", filepath.Base(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat study guide: %v", err)
	}
	if info.Size() == 0 {
		t.Error("study guide file is empty")
	}
}

func TestStudyGuideEmptyResult(t *testing.T) {
	e := New(t.TempDir(), logger.New("error"))

	path, err := e.StudyGuide(context.Background(), "job-empty", &job.Result{})
	if err != nil {
		t.Fatalf("StudyGuide() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat study guide: %v", err)
	}
}
