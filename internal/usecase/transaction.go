package usecase

import (
	"context"
	"fmt"
	"log"
)

// Transaction runs steps in order and, when one fails, runs the compensations
// of the steps that already succeeded in reverse order.
type Transaction struct {
	operations    []Operation
	compensations []*Compensation
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction() *Transaction {
	return &Transaction{}
}

// AddOperation appends a step; AddCompensation after it attaches the undo for that step.
func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, Operation{name, fn})
	t.compensations = append(t.compensations, nil)
}

func (t *Transaction) AddCompensation(name string, fn func(context.Context) error) {
	if len(t.compensations) == 0 {
		return
	}
	t.compensations[len(t.compensations)-1] = &Compensation{name, fn}
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	for i := failedAtIndex - 1; i >= 0; i-- {
		comp := t.compensations[i]
		if comp == nil {
			continue
		}
		if err := comp.Fn(ctx); err != nil {
			log.Printf("⚠️ WARNING: Compensation '%s' failed: %v (inconsistency risk!)", comp.Name, err)
		}
	}
}
