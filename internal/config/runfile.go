package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	auditerrors "sheetqa/internal/errors"
	"sheetqa/pkg/contracts/domain"
)

// RunFile is a YAML document describing the runs of one session
//
//	runs:
//	  - source_path: items.xlsx
//	    sheet: Items
//	    columns:
//	      - name: SKU
//	        mode: strict
//	      - name: File
//	    active_rules: [spacing, extension]
type RunFile struct {
	Runs []domain.RunConfig `yaml:"runs" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadRunFile reads and validates the runs in a YAML run file. Rule names
// and modes are normalised to lower case before validation.
func LoadRunFile(path string) ([]domain.RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, auditerrors.NewIOFailure("read run file "+path, err)
	}

	var file RunFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, auditerrors.NewConfigInvalid(fmt.Errorf("parse %s: %w", path, err))
	}

	for i := range file.Runs {
		normalizeRun(&file.Runs[i])
	}

	if err := validate.Struct(file); err != nil {
		return nil, auditerrors.NewConfigInvalid(describe(err))
	}
	return file.Runs, nil
}

// ValidateRunConfig checks a single run, however it was built.
func ValidateRunConfig(run *domain.RunConfig) error {
	normalizeRun(run)
	if err := validate.Struct(run); err != nil {
		return auditerrors.NewConfigInvalid(describe(err))
	}
	return nil
}

func normalizeRun(run *domain.RunConfig) {
	for i, kind := range run.ActiveRules {
		run.ActiveRules[i] = domain.RuleKind(strings.ToLower(strings.TrimSpace(string(kind))))
	}
	for i, col := range run.Columns {
		run.Columns[i].Name = strings.TrimSpace(col.Name)
		run.Columns[i].Mode = domain.SpacingMode(strings.ToLower(string(col.Mode)))
	}
}

// describe flattens validator field errors into one readable error
func describe(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
