// Package loandata carga solicitudes de préstamo de muestra, desde CSV si hay
// un archivo configurado o desde el dataset embebido si no.
package loandata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"compliance-llm/internal/domain"
)

// ErrApplicationNotFound se devuelve al pedir una solicitud inexistente.
var ErrApplicationNotFound = errors.New("application not found")

// Loader sirve solicitudes de préstamo para demo y pruebas.
type Loader struct {
	applications []domain.Application
}

// NewLoader carga el CSV de dataPath; con path vacío o archivo ilegible usa
// las muestras embebidas.
func NewLoader(dataPath string) (*Loader, error) {
	if dataPath == "" {
		return &Loader{applications: sampleApplications()}, nil
	}
	apps, err := loadCSV(dataPath)
	if err != nil {
		return nil, fmt.Errorf("load loan data from %s: %w", dataPath, err)
	}
	return &Loader{applications: apps}, nil
}

// List devuelve hasta count solicitudes; count <= 0 devuelve todas.
func (l *Loader) List(count int) []domain.Application {
	if count <= 0 || count > len(l.applications) {
		count = len(l.applications)
	}
	out := make([]domain.Application, count)
	copy(out, l.applications[:count])
	return out
}

// GetByID busca una solicitud por su campo id.
func (l *Loader) GetByID(applicationID string) (domain.Application, error) {
	for _, app := range l.applications {
		if app.ID() == applicationID {
			return app, nil
		}
	}
	return nil, fmt.Errorf("application %q: %w", applicationID, ErrApplicationNotFound)
}

// loadCSV lee un CSV con cabecera. Los valores numéricos se convierten a
// float64 y el resto queda como string, igual que un documento JSON.
func loadCSV(path string) ([]domain.Application, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, errors.New("csv has no data rows")
	}

	header := rows[0]
	apps := make([]domain.Application, 0, len(rows)-1)
	for _, row := range rows[1:] {
		app := make(domain.Application, len(header))
		for i, field := range header {
			if i >= len(row) {
				break
			}
			value := row[i]
			if n, err := strconv.ParseFloat(value, 64); err == nil {
				app[field] = n
			} else {
				app[field] = value
			}
		}
		apps = append(apps, app)
	}
	return apps, nil
}

func sampleApplications() []domain.Application {
	return []domain.Application{
		{
			"id": "LC_1001", "loan_amount": 10000.0, "interest_rate": 5.32, "grade": "A",
			"employment_length": 10.0, "home_ownership": "RENT", "annual_income": 60000.0,
			"purpose": "debt_consolidation", "dti": 15.2, "delinq_2yrs": 0.0,
		},
		{
			"id": "LC_1002", "loan_amount": 20000.0, "interest_rate": 10.99, "grade": "C",
			"employment_length": 3.0, "home_ownership": "OWN", "annual_income": 75000.0,
			"purpose": "home_improvement", "dti": 28.5, "delinq_2yrs": 1.0,
		},
		{
			"id": "LC_1003", "loan_amount": 15000.0, "interest_rate": 7.89, "grade": "B",
			"employment_length": 5.0, "home_ownership": "MORTGAGE", "annual_income": 90000.0,
			"purpose": "major_purchase", "dti": 18.7, "delinq_2yrs": 0.0,
		},
		{
			"id": "LC_1004", "loan_amount": 30000.0, "interest_rate": 15.23, "grade": "E",
			"employment_length": 1.0, "home_ownership": "RENT", "annual_income": 45000.0,
			"purpose": "debt_consolidation", "dti": 35.2, "delinq_2yrs": 3.0,
		},
		{
			"id": "LC_1005", "loan_amount": 8000.0, "interest_rate": 6.08, "grade": "A",
			"employment_length": 8.0, "home_ownership": "OWN", "annual_income": 120000.0,
			"purpose": "credit_card", "dti": 10.1, "delinq_2yrs": 0.0,
		},
	}
}
