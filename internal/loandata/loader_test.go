package loandata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_EmbeddedSamples(t *testing.T) {
	loader, err := NewLoader("")
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	apps := loader.List(0)
	if len(apps) != 5 {
		t.Fatalf("expected 5 embedded samples, got %d", len(apps))
	}

	apps = loader.List(2)
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}
	if apps[0].ID() != "LC_1001" || apps[1].ID() != "LC_1002" {
		t.Fatalf("unexpected ids: %q, %q", apps[0].ID(), apps[1].ID())
	}

	// Pedir más de lo que hay devuelve todo, sin error.
	if got := loader.List(100); len(got) != 5 {
		t.Fatalf("expected 5, got %d", len(got))
	}
}

func TestLoader_GetByID(t *testing.T) {
	loader, err := NewLoader("")
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	app, err := loader.GetByID("LC_1003")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if app.String("grade") != "B" {
		t.Fatalf("unexpected application: %+v", app)
	}
	if app.Float("loan_amount") != 15000 {
		t.Fatalf("unexpected loan amount: %v", app.Float("loan_amount"))
	}

	_, err = loader.GetByID("LC_9999")
	if !errors.Is(err, ErrApplicationNotFound) {
		t.Fatalf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestLoader_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loans.csv")
	csvData := "id,loan_amount,grade,dti\nCSV_1,12500,B,22.5\nCSV_2,4000,A,9.1\n"
	if err := os.WriteFile(path, []byte(csvData), 0o600); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	loader, err := NewLoader(path)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	apps := loader.List(0)
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}

	app, err := loader.GetByID("CSV_1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	// Columnas numéricas llegan como float64, el resto como string.
	if app.Float("loan_amount") != 12500 || app.Float("dti") != 22.5 {
		t.Fatalf("numeric columns not parsed: %+v", app)
	}
	if app.String("grade") != "B" {
		t.Fatalf("string column mangled: %+v", app)
	}
}

func TestLoader_MissingCSV(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing csv file")
	}
}
