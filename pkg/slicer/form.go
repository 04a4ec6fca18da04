package slicer

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Selectors for the data slicer form. The field ids are stable across page
// loads even though they look generated.
const (
	gdprAgreeSelector  = "a#gdpr-agree"
	spinnerSelector    = "div.overlay-spinner.spinner"
	jobNameSelector    = "input#BgjfIUsr_1"
	formatSelector     = "select#BgjfIUsr_5"
	regionSelector     = "input#BgjfIUsr_6"
	genotypeSelector   = "input#BgjfIUsr_10"
	mappingSelector    = "input#BgjfIUsr_12"
	populationSelector = "select#BgjfIUsr_16"
	mastheadSelector   = "div#masthead"
	runButtonSelector  = "input.run_button.fbutton"
)

// FormDriver locates and populates the data slicer form from a JobRequest.
type FormDriver struct {
	// TargetURL is the form page.
	TargetURL string

	// FieldTimeout bounds the wait for each control to become ready.
	FieldTimeout time.Duration

	// SettleTimeout bounds the wait for the busy spinner to clear after
	// each interaction.
	SettleTimeout time.Duration

	Logger *slog.Logger
}

// formStep is one field set against the form, named for error reporting.
type formStep struct {
	field string
	apply func(Page) error
}

// steps builds the ordered field list for the request. The masthead click
// blurs the mapping input so the population select renders its options.
func (d *FormDriver) steps(req *JobRequest) []formStep {
	steps := []formStep{
		{"job name", func(p Page) error {
			if err := d.ready(p, jobNameSelector); err != nil {
				return err
			}
			return p.Fill(jobNameSelector, req.JobName)
		}},
		{"file format", func(p Page) error {
			if err := d.ready(p, formatSelector); err != nil {
				return err
			}
			return p.SelectLabel(formatSelector, string(req.Format))
		}},
		{"region", func(p Page) error {
			if err := d.ready(p, regionSelector); err != nil {
				return err
			}
			return p.Fill(regionSelector, req.Region.String())
		}},
		{"genotype file URL", func(p Page) error {
			if err := d.ready(p, genotypeSelector); err != nil {
				return err
			}
			return p.Fill(genotypeSelector, req.GenotypeURL)
		}},
		{"filters", func(p Page) error {
			selector := fmt.Sprintf("input[value=%q]", string(req.Filter))
			if err := d.ready(p, selector); err != nil {
				return err
			}
			return p.Check(selector)
		}},
	}

	if req.Filter == FilterPopulations {
		steps = append(steps,
			formStep{"sample-population mapping file URL", func(p Page) error {
				if err := d.ready(p, mappingSelector); err != nil {
					return err
				}
				if err := p.Fill(mappingSelector, req.MappingURL); err != nil {
					return err
				}
				// Blur the URL input; the population select only
				// populates once focus leaves it.
				return p.Click(mastheadSelector)
			}},
			formStep{"populations", func(p Page) error {
				if err := d.ready(p, populationSelector); err != nil {
					return err
				}
				for _, code := range req.Populations {
					if err := p.SelectLabel(populationSelector, code); err != nil {
						return err
					}
				}
				return nil
			}},
		)
	}

	return steps
}

func (d *FormDriver) ready(p Page, selector string) error {
	return p.WaitVisible(selector, d.FieldTimeout)
}

// settle waits for the page's busy overlay to clear. The overlay may never
// have been shown, so a timeout here is not an error.
func (d *FormDriver) settle(p Page) {
	_ = p.WaitHidden(spinnerSelector, d.SettleTimeout)
}

// FillAndSubmit navigates to the form, sets every field from the request,
// and submits. Each control is waited on before it is touched; a control
// that never becomes ready fails with a FormInteractionError naming the
// logical field. Submission happens only after every field is set.
func (d *FormDriver) FillAndSubmit(ctx context.Context, page Page, req *JobRequest) error {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	log.Info("opening data slicer form", "url", d.TargetURL)
	if err := page.Navigate(d.TargetURL); err != nil {
		return &FormInteractionError{Field: "form page", Err: err}
	}
	d.settle(page)

	// Dismiss the consent banner if it is shown; returning profiles may
	// not see one.
	if visible, err := page.IsVisible(gdprAgreeSelector); err == nil && visible {
		log.Debug("dismissing consent banner")
		if err := page.Click(gdprAgreeSelector); err != nil {
			return &FormInteractionError{Field: "consent banner", Err: err}
		}
		d.settle(page)
	}

	for _, step := range d.steps(req) {
		if err := ctx.Err(); err != nil {
			return &FormInteractionError{Field: step.field, Err: err}
		}
		log.Info("setting form field", "field", step.field)
		if err := step.apply(page); err != nil {
			return &FormInteractionError{Field: step.field, Err: err}
		}
		d.settle(page)
	}

	log.Info("submitting job", "name", req.JobName)
	if err := d.ready(page, runButtonSelector); err != nil {
		return &FormInteractionError{Field: "run button", Err: err}
	}
	if err := page.Click(runButtonSelector); err != nil {
		return &FormInteractionError{Field: "run button", Err: err}
	}
	d.settle(page)
	return nil
}
