package client

import (
	"context"
	"errors"
	"strconv"
)

// TrainingElementForm — состояние формы шаблона тренировки.
// Длительность хранится строкой, как её ввёл пользователь,
// и разбирается при валидации.
type TrainingElementForm struct {
	Name         string
	Description  string
	Duration     string
	SessionType  string
	MaterialLink string
}

// TrainingElementEditor — модальный сценарий управления каталогом шаблонов,
// устроен так же, как BookingEditor
type TrainingElementEditor struct {
	api     *Client
	notify  Notifier
	confirm Confirmer

	OnSaveSuccess func()

	existing     *TrainingElement
	Form         TrainingElementForm
	sessionTypes []string
	loaded       bool
	open         bool
	saving       bool
}

func NewTrainingElementEditor(api *Client, notify Notifier, confirm Confirmer) *TrainingElementEditor {
	return &TrainingElementEditor{api: api, notify: notify, confirm: confirm}
}

// Open загружает список типов сессий с сервера и предзаполняет форму
func (e *TrainingElementEditor) Open(ctx context.Context, initial *TrainingElement) error {
	e.open = true
	e.loaded = false
	e.existing = nil
	e.Form = TrainingElementForm{}

	types, err := e.api.SessionTypes(ctx)
	if err != nil {
		e.notify.Error(err.Error())
		return err
	}
	e.sessionTypes = types

	if initial != nil {
		existing := *initial
		e.existing = &existing
		e.Form = TrainingElementForm{
			Name:         initial.Name,
			Description:  initial.Description,
			Duration:     strconv.Itoa(initial.DurationMinutes),
			SessionType:  initial.SessionType,
			MaterialLink: initial.MaterialLink,
		}
	}

	e.loaded = true
	return nil
}

func (e *TrainingElementEditor) Loaded() bool { return e.loaded }
func (e *TrainingElementEditor) IsOpen() bool { return e.open }
func (e *TrainingElementEditor) Saving() bool { return e.saving }
func (e *TrainingElementEditor) Editing() bool { return e.existing != nil }
func (e *TrainingElementEditor) SessionTypes() []string { return e.sessionTypes }

func (e *TrainingElementEditor) Close() {
	e.open = false
	e.loaded = false
	e.existing = nil
	e.Form = TrainingElementForm{}
}

// validate возвращает сообщение для пользователя и разобранную длительность
func (e *TrainingElementEditor) validate() (int, error) {
	if e.Form.Name == "" {
		return 0, errors.New("Name is required.")
	}
	duration, err := strconv.Atoi(e.Form.Duration)
	if err != nil || duration <= 0 {
		return 0, errors.New("Duration must be a positive number")
	}
	if e.Form.SessionType == "" {
		return 0, errors.New("Session type is required.")
	}
	if !e.validSessionType(e.Form.SessionType) {
		return 0, errors.New("Session type must be one of the allowed types.")
	}
	// material link не валидируется — необязательное поле
	return duration, nil
}

func (e *TrainingElementEditor) validSessionType(sessionType string) bool {
	for _, t := range e.sessionTypes {
		if t == sessionType {
			return true
		}
	}
	return false
}

func (e *TrainingElementEditor) Submit(ctx context.Context) error {
	if !e.loaded {
		return errors.New("training element form is not ready")
	}
	duration, err := e.validate()
	if err != nil {
		e.notify.Error(err.Error())
		return err
	}

	e.saving = true
	defer func() { e.saving = false }()

	input := TrainingElementInput{
		Name:            e.Form.Name,
		Description:     e.Form.Description,
		DurationMinutes: duration,
		SessionType:     e.Form.SessionType,
		MaterialLink:    e.Form.MaterialLink,
	}

	var message string
	if e.existing != nil {
		resp, err := e.api.UpdateTrainingElement(ctx, e.existing.ID, input)
		if err != nil {
			e.notify.Error(err.Error())
			return err
		}
		message = resp.Message
	} else {
		resp, err := e.api.CreateTrainingElement(ctx, input)
		if err != nil {
			e.notify.Error(err.Error())
			return err
		}
		message = resp.Message
	}

	e.notify.Success(message)
	if e.OnSaveSuccess != nil {
		e.OnSaveSuccess()
	}
	e.Close()
	return nil
}

func (e *TrainingElementEditor) Delete(ctx context.Context) error {
	if e.existing == nil {
		return nil
	}
	if !e.confirm.Confirm("Are you sure you want to delete this training element?") {
		return nil
	}

	e.saving = true
	defer func() { e.saving = false }()

	resp, err := e.api.DeleteTrainingElement(ctx, e.existing.ID)
	if err != nil {
		e.notify.Error(err.Error())
		return err
	}

	e.notify.Success(resp.Message)
	if e.OnSaveSuccess != nil {
		e.OnSaveSuccess()
	}
	e.Close()
	return nil
}
