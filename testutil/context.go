package testutil

import (
	"context"
)

// NewContext wraps parent, see SetErrEval
func NewContext(parent context.Context) *Context {
	return &Context{
		Context: parent,
	}
}

// Context lets a test decide what Err() reports, without waiting on real deadlines or cancellations.
type Context struct {
	context.Context
	errEvalFn ErrEvalFn
}

type ErrEvalFn func(parent context.Context) error

func (c *Context) SetParent(ctx context.Context) *Context {
	c.Context = ctx
	return c
}

// SetErrEval allows you to define a callback that can be use to influence when Err() returns an error
func (c *Context) SetErrEval(fn ErrEvalFn) {
	c.errEvalFn = fn
}

func (c *Context) Err() error {
	if c.errEvalFn == nil {
		return c.Context.Err()
	}

	return c.errEvalFn(c.Context)
}
