package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"path"
	"reflect"
	"strings"
	"time"

	"surveyapi/internal/errs"
	"surveyapi/internal/model"
)

var nowFunc = time.Now

type copyInput struct {
	source              *model.SurveyCopySource
	newSurveyID         string
	newSegmentID        string
	targetEnvironmentID string
	targetProject       *model.ProjectWithLanguages
	sameEnvironment     bool
	targetActionClasses []model.ActionClass
	segmentTitleTaken   bool
	userID              string
	now                 time.Time
}

// buildCopyPlan decides everything a survey copy writes. It does no I/O.
func buildCopyPlan(in copyInput) (*model.SurveyCopyPlan, error) {
	src := in.source
	plan := &model.SurveyCopyPlan{
		ID:                  in.newSurveyID,
		Name:                src.Name + " (copy)",
		Type:                src.Type,
		Status:              model.SurveyStatusDraft,
		EnvironmentID:       in.targetEnvironmentID,
		CreatedBy:           in.userID,
		WelcomeCard:         cloneJSON(src.WelcomeCard),
		Questions:           cloneJSON(src.Questions),
		Endings:             cloneJSON(src.Endings),
		Variables:           cloneJSON(src.Variables),
		HiddenFields:        cloneJSON(src.HiddenFields),
		SurveyClosedMessage: cloneJSON(src.SurveyClosedMessage),
		SingleUse:           cloneJSON(src.SingleUse),
		ProjectOverwrites:   cloneJSON(src.ProjectOverwrites),
		Styling:             cloneJSON(src.Styling),
	}

	for _, l := range src.Languages {
		plan.Languages = append(plan.Languages, model.LanguagePlan{
			ProjectID: in.targetProject.ID,
			Code:      l.Code,
			Alias:     l.Alias,
			Default:   l.Default,
			Enabled:   l.Enabled,
		})
	}

	existingNames := make(map[string]struct{}, len(in.targetActionClasses))
	for _, ac := range in.targetActionClasses {
		existingNames[ac.Name] = struct{}{}
	}
	for _, ac := range src.Triggers {
		plan.Triggers = append(plan.Triggers, planTrigger(ac, in, existingNames))
	}

	if seg := src.Segment; seg != nil {
		switch {
		case seg.IsPrivate:
			plan.Segment = &model.SegmentPlan{Create: &model.Segment{
				ID:            in.newSegmentID,
				Title:         in.newSurveyID,
				IsPrivate:     true,
				Filters:       cloneJSON(seg.Filters),
				EnvironmentID: in.targetEnvironmentID,
			}}
		case in.sameEnvironment:
			plan.Segment = &model.SegmentPlan{ConnectID: seg.ID}
		default:
			title := seg.Title
			if in.segmentTitleTaken {
				title = fmt.Sprintf("%s-%d", seg.Title, in.now.UnixMilli())
			}
			plan.Segment = &model.SegmentPlan{Create: &model.Segment{
				ID:            in.newSegmentID,
				Title:         title,
				Description:   seg.Description,
				IsPrivate:     false,
				Filters:       cloneJSON(seg.Filters),
				EnvironmentID: in.targetEnvironmentID,
			}}
		}
	}

	for _, f := range src.FollowUps {
		plan.FollowUps = append(plan.FollowUps, model.SurveyFollowUp{
			Name:    f.Name,
			Trigger: cloneJSON(f.Trigger),
			Action:  cloneJSON(f.Action),
		})
	}

	if len(plan.Questions) > 0 {
		if err := checkForInvalidImagesInQuestions(plan.Questions); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// planTrigger reuses a matching action class of the target environment when there is one.
// Otherwise the class is connected, upserted or created under a free name.
func planTrigger(ac model.ActionClass, in copyInput, existingNames map[string]struct{}) model.TriggerPlan {
	for _, existing := range in.targetActionClasses {
		if ac.Type == model.ActionClassTypeCode && sameKey(ac.Key, existing.Key) {
			return model.TriggerPlan{Mode: model.TriggerConnect, ActionClass: existing}
		}
		if ac.Type == model.ActionClassTypeNoCode && sameJSON(ac.NoCodeConfig, existing.NoCodeConfig) {
			return model.TriggerPlan{Mode: model.TriggerConnect, ActionClass: existing}
		}
	}

	if in.sameEnvironment {
		return model.TriggerPlan{Mode: model.TriggerConnect, ActionClass: ac}
	}

	_, hasNameConflict := existingNames[ac.Name]
	name := ac.Name
	if hasNameConflict {
		name = uniqueCopyName(ac.Name, existingNames)
	}

	created := model.ActionClass{
		Name:          name,
		Description:   ac.Description,
		Type:          ac.Type,
		EnvironmentID: in.targetEnvironmentID,
	}

	if ac.Type == model.ActionClassTypeCode {
		created.Key = ac.Key
		return model.TriggerPlan{Mode: model.TriggerUpsertByKey, ActionClass: created}
	}

	created.NoCodeConfig = cloneJSON(ac.NoCodeConfig)
	if hasNameConflict {
		return model.TriggerPlan{Mode: model.TriggerCreate, ActionClass: created}
	}
	return model.TriggerPlan{Mode: model.TriggerUpsertByName, ActionClass: created}
}

// uniqueCopyName returns the first of "<name> (copy)", "<name> (copy 2)", ... not in taken.
func uniqueCopyName(name string, taken map[string]struct{}) string {
	candidate := name + " (copy)"
	for n := 2; ; n++ {
		if _, ok := taken[candidate]; !ok {
			return candidate
		}
		candidate = fmt.Sprintf("%s (copy %d)", name, n)
	}
}

func sameKey(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// sameJSON compares two JSON documents by value. Empty documents never match.
func sameJSON(a, b json.RawMessage) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	if bytes.Equal(a, b) {
		return true
	}
	var va, vb any
	if json.Unmarshal(a, &va) != nil || json.Unmarshal(b, &vb) != nil {
		return false
	}
	return reflect.DeepEqual(va, vb)
}

func cloneJSON(m json.RawMessage) json.RawMessage {
	if m == nil {
		return nil
	}
	return append(json.RawMessage(nil), m...)
}

var allowedImageExtensions = map[string]struct{}{
	"png":  {},
	"jpeg": {},
	"jpg":  {},
	"webp": {},
	"heic": {},
}

type questionImages struct {
	Type     string `json:"type"`
	ImageURL string `json:"imageUrl"`
	Choices  *[]struct {
		ImageURL string `json:"imageUrl"`
	} `json:"choices"`
}

// checkForInvalidImagesInQuestions rejects question and picture-choice images
// that are not png, jpeg, jpg, webp or heic files.
func checkForInvalidImagesInQuestions(questions json.RawMessage) error {
	var qs []questionImages
	if err := json.Unmarshal(questions, &qs); err != nil {
		return errs.NewInvalidInput("invalid questions: %v", err)
	}

	for qi, q := range qs {
		if q.ImageURL != "" && !isValidImageFile(q.ImageURL) {
			return errs.NewInvalidInput("Invalid image file in question %d", qi+1)
		}
		if q.Type != "pictureSelection" {
			continue
		}
		if q.Choices == nil {
			return errs.NewInvalidInput("Choices missing for question %d", qi+1)
		}
		for ci, c := range *q.Choices {
			if !isValidImageFile(c.ImageURL) {
				return errs.NewInvalidInput("Invalid image file for choice %d in question %d", ci+1, qi+1)
			}
		}
	}
	return nil
}

func isValidImageFile(fileURL string) bool {
	p := fileURL
	if u, err := url.Parse(fileURL); err == nil {
		p = u.Path
	}
	name := path.Base(p)
	if name == "" || name == "." || name == "/" || strings.HasSuffix(name, ".") {
		return false
	}
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return false
	}
	_, ok := allowedImageExtensions[strings.ToLower(name[dot+1:])]
	return ok
}
