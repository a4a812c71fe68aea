package executor

import (
	"fmt"
	"log/slog"

	"github.com/mcncl/accio/collection"
	"github.com/mcncl/accio/internal/errors"
	"github.com/mcncl/accio/internal/models"
	"github.com/mcncl/accio/value"
)

// Executor runs resolved requests against parsed JSON.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates an Executor that logs through slog.Default.
func NewExecutor() *Executor {
	return &Executor{logger: slog.Default()}
}

// NewExecutorWithLogger creates an Executor with its own logger.
func NewExecutorWithLogger(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{logger: logger}
}

// Execute navigates root along req.Steps, applies the request's mode and
// returns the unwrapped result. A result that does not exist is returned as
// value.Undefined, not as an error.
func (e *Executor) Execute(root value.Value, req models.Request) (value.Value, error) {
	mode := req.Mode
	if mode == "" {
		mode = models.ModeGet
	}
	if !mode.Valid() {
		return value.Value{}, errors.NewQueryError(fmt.Sprintf("mode '%s'", mode), errors.ErrUnknownMode)
	}
	if req.NeedsSpec() && len(req.Where) == 0 {
		return value.Value{}, errors.NewQueryError(fmt.Sprintf("mode '%s' needs at least one where clause", mode), nil)
	}

	transform, err := Transformer(req.Transform)
	if err != nil {
		return value.Value{}, errors.NewQueryError(fmt.Sprintf("transform '%s'", req.Transform), err)
	}

	c, err := e.navigate(collection.New(root), req.Steps)
	if err != nil {
		return value.Value{}, err
	}

	e.logger.Debug("applying mode", "mode", mode, "where", req.Where.String(), "items", c.Len())

	switch mode {
	case models.ModeSearch:
		return e.search(c, req, transform), nil
	case models.ModeFind:
		c = c.Find(req.Where)
	case models.ModeFindOne:
		c = c.FindOne(req.Where)
	}

	e.logger.Debug("shaping result", "items", c.Len(), "projection", req.Projection, "transform", req.Transform)
	return shape(c, req.Projection, transform), nil
}

func (e *Executor) navigate(c *collection.Container, steps []models.Step) (*collection.Container, error) {
	for i, step := range steps {
		switch step.Kind {
		case models.StepIndex:
			next, err := c.Index(step.Index)
			if err != nil {
				return nil, errors.NewExecutionError(fmt.Sprintf("step %d (%s)", i+1, step), err)
			}
			c = next
		default:
			c = c.Field(step.Name)
		}
		e.logger.Debug("navigated", "step", step.String(), "shape", c.Shape(), "items", c.Len())
	}
	return c, nil
}

func (e *Executor) search(c *collection.Container, req models.Request, transform collection.Transformer) value.Value {
	var opts []collection.SearchOption
	if req.Projection != nil {
		opts = append(opts, collection.WithProjection(req.Projection...))
	}
	if req.Flatten {
		opts = append(opts, collection.WithFlatten())
	}
	if transform != nil {
		if !req.Flatten {
			transform = resultValue(transform)
		}
		opts = append(opts, collection.WithTransformer(transform))
	}
	if req.MaxResults > 0 {
		opts = append(opts, collection.WithMaxResults(req.MaxResults))
	}

	results := c.Search(req.Where, opts...)
	e.logger.Debug("search finished", "results", results.Len(), "flatten", req.Flatten)
	return results.Get()
}

// shape applies projection and key transforms to the items of c outside of
// search, then unwraps it.
func shape(c *collection.Container, projection []string, transform collection.Transformer) value.Value {
	if projection == nil && transform == nil {
		return c.Get()
	}
	apply := func(v value.Value) value.Value {
		if projection != nil {
			v = collection.Project(v, projection...)
		}
		if transform != nil {
			v = transform(v)
		}
		return v
	}

	if c.Shape() == collection.ShapeSingle {
		v := c.Get()
		if v.IsUndefined() {
			return v
		}
		return apply(v)
	}
	items := c.Items()
	for i := range items {
		items[i] = apply(items[i])
	}
	return value.Array(items...)
}

// resultValue lifts t so it only rewrites the "value" member of a search
// result, keeping "location" intact.
func resultValue(t collection.Transformer) collection.Transformer {
	return func(entry value.Value) value.Value {
		return entry.Set("value", t(entry.Lookup("value")))
	}
}
