package entity

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("not found")

type Stage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

type Funnel struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Stages []Stage `json:"stages"`
}

// Factory: assume que o input já passou pela validação do usecase.
func NewFunnel(name string, stageNames []string) *Funnel {
	f := &Funnel{
		ID:     uuid.New().String(),
		Name:   name,
		Stages: make([]Stage, 0, len(stageNames)),
	}
	for i, sn := range stageNames {
		f.Stages = append(f.Stages, Stage{
			ID:    uuid.New().String(),
			Name:  sn,
			Order: i + 1,
		})
	}
	return f
}

func (f *Funnel) StageByID(id string) (Stage, bool) {
	for _, s := range f.Stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// FirstStage é o estágio de entrada do funil.
func (f *Funnel) FirstStage() Stage {
	return f.Stages[0]
}

// LastStage é o estágio terminal ("Fechado"). Leads aqui contam como convertidos.
func (f *Funnel) LastStage() Stage {
	return f.Stages[len(f.Stages)-1]
}

func (f *Funnel) AppendStage(name string) Stage {
	next := 0
	for _, s := range f.Stages {
		if s.Order > next {
			next = s.Order
		}
	}
	stage := Stage{ID: uuid.New().String(), Name: name, Order: next + 1}
	f.Stages = append(f.Stages, stage)
	return stage
}

func (f *Funnel) RemoveStage(id string) bool {
	for i, s := range f.Stages {
		if s.ID == id {
			f.Stages = append(f.Stages[:i], f.Stages[i+1:]...)
			return true
		}
	}
	return false
}
