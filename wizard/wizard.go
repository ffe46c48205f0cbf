// Package wizard drives the multi-step project editor: a bounded linear
// sequence of steps accumulating one in-memory draft, validated
// progressively and committed as a single create-or-update write at
// submit time.
package wizard

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkarpov/portfolio-site-backend/models"
)

// DefaultSteps is the step count of the full editor. The reduced editor
// uses 4.
const DefaultSteps = 6

// MaxDocumentBytes caps the serialized draft. Documents near the
// store's per-document ceiling are rejected before any network write.
const MaxDocumentBytes = 1_000_000

// Field length caps.
const (
	maxTitleLen            = 100
	maxShortDescriptionLen = 200
	maxFullDescriptionLen  = 5000
	maxFunctionalityLen    = 3000
	maxChallengesLen       = 2000
	maxResultsLen          = 2000
)

var (
	ErrNotLastStep      = errors.New("publish is only available on the last step")
	ErrValidation       = errors.New("draft has validation errors")
	ErrDocumentTooLarge = errors.New("документ превышает допустимый размер")
)

// Store commits a finished draft. *database.ProjectRepo satisfies it.
type Store interface {
	Add(project *models.Project) error
	Update(project *models.Project) error
}

// Wizard holds the editor state for one project draft. It is not safe
// for concurrent use; each editing session owns its own Wizard.
type Wizard struct {
	steps       int
	step        int
	draft       models.Project
	errors      map[string]string
	nextLocalID int64
}

// New returns a wizard over an empty draft, positioned on step 1.
func New(steps int) *Wizard {
	if steps < 2 {
		steps = DefaultSteps
	}
	return &Wizard{steps: steps, step: 1, errors: map[string]string{}, nextLocalID: 1}
}

// Edit returns a wizard seeded from an existing project, positioned on
// step 1. Submitting will update rather than create. The collections
// are copied so edits never reach the caller's value before submit.
func Edit(steps int, project models.Project) *Wizard {
	w := New(steps)
	w.draft = project
	w.draft.ProcessSteps = append(project.ProcessSteps[:0:0], project.ProcessSteps...)
	w.draft.ResultMetrics = append(project.ResultMetrics[:0:0], project.ResultMetrics...)
	w.draft.Technologies = append(project.Technologies[:0:0], project.Technologies...)
	for _, s := range project.ProcessSteps {
		if s.ID >= w.nextLocalID {
			w.nextLocalID = s.ID + 1
		}
	}
	for _, m := range project.ResultMetrics {
		if m.ID >= w.nextLocalID {
			w.nextLocalID = m.ID + 1
		}
	}
	return w
}

// Step is the current 1-based step index.
func (w *Wizard) Step() int { return w.step }

// Steps is the total step count.
func (w *Wizard) Steps() int { return w.steps }

// Next advances one step. It reports false (and stays put) on the last
// step. Navigation never touches entered data.
func (w *Wizard) Next() bool {
	if w.step >= w.steps {
		return false
	}
	w.step++
	return true
}

// Previous moves one step back. It reports false on the first step.
func (w *Wizard) Previous() bool {
	if w.step <= 1 {
		return false
	}
	w.step--
	return true
}

// Draft is a copy of the accumulated draft.
func (w *Wizard) Draft() models.Project { return w.draft }

// Errors is the current field error map. Submit is blocked while it is
// non-empty.
func (w *Wizard) Errors() map[string]string { return w.errors }

func (w *Wizard) setFieldError(field, msg string) {
	if msg == "" {
		delete(w.errors, field)
		return
	}
	w.errors[field] = msg
}

// SetTitle sets the title and validates it inline.
func (w *Wizard) SetTitle(title string) {
	w.draft.Title = title
	switch {
	case title == "":
		w.setFieldError("title", "Название обязательно")
	case len([]rune(title)) > maxTitleLen:
		w.setFieldError("title", fmt.Sprintf("Название не должно превышать %d символов", maxTitleLen))
	default:
		w.setFieldError("title", "")
	}
}

// SetShortDescription sets the short description and validates it inline.
func (w *Wizard) SetShortDescription(text string) {
	w.draft.ShortDescription = text
	switch {
	case text == "":
		w.setFieldError("shortDescription", "Краткое описание обязательно")
	case len([]rune(text)) > maxShortDescriptionLen:
		w.setFieldError("shortDescription", fmt.Sprintf("Краткое описание не должно превышать %d символов", maxShortDescriptionLen))
	default:
		w.setFieldError("shortDescription", "")
	}
}

// SetCategory sets the category and validates it against the fixed
// vocabulary.
func (w *Wizard) SetCategory(category string) {
	w.draft.Category = category
	switch {
	case category == "":
		w.setFieldError("category", "Категория обязательна")
	case !models.ValidCategory(category):
		w.setFieldError("category", "Неизвестная категория")
	default:
		w.setFieldError("category", "")
	}
}

// SetThumbnail stores the thumbnail data URI or URL.
func (w *Wizard) SetThumbnail(thumbnail string) {
	w.draft.Thumbnail = thumbnail
	w.setFieldError("thumbnail", "")
}

func (w *Wizard) setLongForm(field, value string, max int, message string) string {
	if len([]rune(value)) > max {
		w.setFieldError(field, message)
	} else {
		w.setFieldError(field, "")
	}
	return value
}

func (w *Wizard) SetFullDescription(text string) {
	w.draft.FullDescription = w.setLongForm("fullDescription", text, maxFullDescriptionLen,
		fmt.Sprintf("Описание не должно превышать %d символов", maxFullDescriptionLen))
}

func (w *Wizard) SetFunctionality(text string) {
	w.draft.Functionality = w.setLongForm("functionality", text, maxFunctionalityLen,
		fmt.Sprintf("Функциональность не должна превышать %d символов", maxFunctionalityLen))
}

func (w *Wizard) SetChallenges(text string) {
	w.draft.Challenges = w.setLongForm("challenges", text, maxChallengesLen,
		fmt.Sprintf("Сложности не должны превышать %d символов", maxChallengesLen))
}

func (w *Wizard) SetResults(text string) {
	w.draft.Results = w.setLongForm("results", text, maxResultsLen,
		fmt.Sprintf("Результаты не должны превышать %d символов", maxResultsLen))
}

// SetLinks stores the optional github/demo URLs.
func (w *Wizard) SetLinks(githubURL, demoURL string) {
	w.draft.GithubURL = githubURL
	w.draft.DemoURL = demoURL
}

// SetClientName stores the optional client name.
func (w *Wizard) SetClientName(name string) { w.draft.ClientName = name }

// SetFeatured flags the draft for the highlighted subset.
func (w *Wizard) SetFeatured(featured bool) { w.draft.Featured = featured }

// ToggleTechnology adds tech to the draft's set if absent, removes it
// if present.
func (w *Wizard) ToggleTechnology(tech string) {
	for i, existing := range w.draft.Technologies {
		if existing == tech {
			w.draft.Technologies = append(w.draft.Technologies[:i], w.draft.Technologies[i+1:]...)
			return
		}
	}
	w.draft.Technologies = append(w.draft.Technologies, tech)
}

// AddProcessStep appends a timeline entry, assigning its local id, and
// returns that id.
func (w *Wizard) AddProcessStep(step models.ProcessStep) int64 {
	step.ID = w.nextLocalID
	w.nextLocalID++
	if step.Status == "" {
		step.Status = "planned"
	}
	w.draft.ProcessSteps = append(w.draft.ProcessSteps, step)
	return step.ID
}

// UpdateProcessStep replaces the entry with the given id, keeping the id.
func (w *Wizard) UpdateProcessStep(id int64, step models.ProcessStep) bool {
	for i := range w.draft.ProcessSteps {
		if w.draft.ProcessSteps[i].ID == id {
			step.ID = id
			w.draft.ProcessSteps[i] = step
			return true
		}
	}
	return false
}

// RemoveProcessStep filters out the entry with the given id.
func (w *Wizard) RemoveProcessStep(id int64) {
	kept := w.draft.ProcessSteps[:0]
	for _, s := range w.draft.ProcessSteps {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	w.draft.ProcessSteps = kept
}

// AddResultMetric appends a metric, assigning its local id, and returns
// that id.
func (w *Wizard) AddResultMetric(metric models.ResultMetric) int64 {
	metric.ID = w.nextLocalID
	w.nextLocalID++
	w.draft.ResultMetrics = append(w.draft.ResultMetrics, metric)
	return metric.ID
}

// UpdateResultMetric replaces the metric with the given id, keeping the id.
func (w *Wizard) UpdateResultMetric(id int64, metric models.ResultMetric) bool {
	for i := range w.draft.ResultMetrics {
		if w.draft.ResultMetrics[i].ID == id {
			metric.ID = id
			w.draft.ResultMetrics[i] = metric
			return true
		}
	}
	return false
}

// RemoveResultMetric filters out the metric with the given id.
func (w *Wizard) RemoveResultMetric(id int64) {
	kept := w.draft.ResultMetrics[:0]
	for _, m := range w.draft.ResultMetrics {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	w.draft.ResultMetrics = kept
}

// validate re-checks every required field for the target status.
// Publishing demands the full set; a draft only needs a title, so
// required-field errors left behind by editing or by an earlier publish
// attempt are cleared rather than allowed to block the save. Entered
// values still have to fit their caps either way.
func (w *Wizard) validate(targetStatus string) {
	w.SetTitle(w.draft.Title)
	if targetStatus == models.StatusPublished {
		w.SetShortDescription(w.draft.ShortDescription)
		w.SetCategory(w.draft.Category)
		if w.draft.Thumbnail == "" {
			w.setFieldError("thumbnail", "Превью обязательно")
		}
		if len(w.draft.Technologies) == 0 {
			w.setFieldError("technologies", "Укажите хотя бы одну технологию")
		} else {
			w.setFieldError("technologies", "")
		}
		return
	}

	if w.draft.ShortDescription == "" {
		w.setFieldError("shortDescription", "")
	} else {
		w.SetShortDescription(w.draft.ShortDescription)
	}
	if w.draft.Category == "" {
		w.setFieldError("category", "")
	} else {
		w.SetCategory(w.draft.Category)
	}
	w.setFieldError("thumbnail", "")
	w.setFieldError("technologies", "")
}

// Submit validates the full draft and commits it as exactly one write:
// a create when the draft has no identity yet, an update otherwise.
// Publishing is only allowed from the last step; saving a draft may
// bypass the remaining steps. On any failure the draft stays intact and
// can be resubmitted.
func (w *Wizard) Submit(store Store, targetStatus string) (models.Project, error) {
	if targetStatus == models.StatusPublished && w.step != w.steps {
		return models.Project{}, ErrNotLastStep
	}

	w.validate(targetStatus)
	if len(w.errors) > 0 {
		return models.Project{}, ErrValidation
	}

	w.draft.Status = targetStatus

	payload, err := json.Marshal(w.draft)
	if err != nil {
		return models.Project{}, err
	}
	if len(payload) > MaxDocumentBytes {
		return models.Project{}, ErrDocumentTooLarge
	}

	committed := w.draft
	if committed.ID == uuid.Nil {
		err = store.Add(&committed)
	} else {
		err = store.Update(&committed)
	}
	if err != nil {
		return models.Project{}, err
	}

	// Keep the assigned identity so a resubmit updates instead of
	// creating a duplicate.
	w.draft.ID = committed.ID
	return committed, nil
}
