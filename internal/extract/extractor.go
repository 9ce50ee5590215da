package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/joseph-ayodele/os-report/constants"
)

// Extractor turns the text of one work order into a Result.
// It is safe for concurrent use; all matchers are compiled up front.
type Extractor struct {
	rules     Rules
	heading   *regexp.Regexp
	name      labeledField
	role      labeledField
	descLabel *regexp.Regexp
	descTerm  *regexp.Regexp
	logger    *slog.Logger
}

// NewExtractor validates rules and compiles their matchers.
func NewExtractor(rules Rules, logger *slog.Logger) (*Extractor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	e := &Extractor{
		rules:     rules,
		name:      compileField(rules.Name),
		role:      compileField(rules.Role),
		descLabel: descriptionLabel(rules.DescriptionLabel),
		descTerm:  foldLiteral(rules.DescriptionTerminator),
		logger:    logger,
	}
	if rules.SectionHeading != "" {
		e.heading = foldLiteral(rules.SectionHeading)
	}
	return e, nil
}

// Validate checks that the rules can drive an extraction.
func (r Rules) Validate() error {
	var errs []error
	if r.IdentifierDigits <= 0 {
		errs = append(errs, fmt.Errorf("identifier_digits must be positive, got %d", r.IdentifierDigits))
	}
	if r.IdentifierMin > r.IdentifierMax {
		errs = append(errs, fmt.Errorf("identifier_min %d exceeds identifier_max %d", r.IdentifierMin, r.IdentifierMax))
	}
	if strings.TrimSpace(r.Name.Label) == "" {
		errs = append(errs, errors.New("name.label is required"))
	}
	if strings.TrimSpace(r.Role.Label) == "" {
		errs = append(errs, errors.New("role.label is required"))
	}
	if strings.TrimSpace(r.DescriptionLabel) == "" || strings.TrimSpace(r.DescriptionTerminator) == "" {
		errs = append(errs, errors.New("description_label and description_terminator are required"))
	}
	if r.DescriptionMinLength < 0 {
		errs = append(errs, fmt.Errorf("description_min_length must not be negative, got %d", r.DescriptionMinLength))
	}
	return errors.Join(errs...)
}

// Extract runs segmentation and every field extractor over text.
func (e *Extractor) Extract(text string) Result {
	res := EmptyResult()
	if text == "" {
		return res
	}
	subject := segment(text, e.heading)

	if id, ok := FindIdentifier(subject, text, e.rules.IdentifierDigits, e.rules.IdentifierMin, e.rules.IdentifierMax); ok {
		res.Identifier = id
	}

	if raw, ok := e.name.find(subject); ok {
		// The name label sometimes lands on the employer block when the
		// employee section is missing.
		if e.rules.OrganizationMarker != "" && strings.Contains(strings.ToUpper(raw), strings.ToUpper(e.rules.OrganizationMarker)) {
			e.logger.Debug("name capture discarded: organization marker", "marker", e.rules.OrganizationMarker)
		} else if v := Clean(raw); v != "" {
			res.Name = v
		}
	}

	if raw, ok := e.role.find(subject); ok {
		if v := Clean(raw); v != "" {
			res.Role = v
		}
	}

	res.Description = classifyDescription(text, e.descLabel, e.descTerm, e.rules.DescriptionMinLength)
	return res
}

// Missing lists the report columns left at the absent sentinel.
func (r Result) Missing() []string {
	var out []string
	if r.Identifier == constants.NotAvailable {
		out = append(out, "identifier")
	}
	if r.Name == constants.NotAvailable {
		out = append(out, "name")
	}
	if r.Role == constants.NotAvailable {
		out = append(out, "role")
	}
	if r.Description == DescriptionAbsent {
		out = append(out, "description")
	}
	return out
}
