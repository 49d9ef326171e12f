package api

import "github.com/terraincognita07/healthtrack/internal/models"

type registerInput struct {
	Handle      string `json:"handle" validate:"required,max=64"`
	Secret      string `json:"secret" validate:"required"`
	DisplayName string `json:"displayName" validate:"max=128"`
}

type loginInput struct {
	Handle string `json:"handle" validate:"required"`
	Secret string `json:"secret" validate:"required"`
}

type changeSecretInput struct {
	CurrentSecret string `json:"currentSecret" validate:"required"`
	NewSecret     string `json:"newSecret" validate:"required"`
}

type recordInput struct {
	Water    *int     `json:"water" validate:"omitempty,gte=0"`
	Sleep    *float64 `json:"sleep" validate:"omitempty,gte=0,lte=24"`
	Exercise *int     `json:"exercise" validate:"omitempty,gte=0"`
	Study    *int     `json:"study" validate:"omitempty,gte=0"`
	Calories *int     `json:"calories" validate:"omitempty,gte=0"`
	Meals    *int     `json:"meals" validate:"omitempty,gte=0"`
	Mood     *string  `json:"mood" validate:"omitempty,max=64"`
}

func (input recordInput) fields() models.RecordFields {
	return models.RecordFields{
		Water:    input.Water,
		Sleep:    input.Sleep,
		Exercise: input.Exercise,
		Study:    input.Study,
		Calories: input.Calories,
		Meals:    input.Meals,
		Mood:     input.Mood,
	}
}

type categoryInput struct {
	Value *float64 `json:"value" validate:"required,gte=0"`
	Notes *string  `json:"notes" validate:"omitempty,max=512"`
}
