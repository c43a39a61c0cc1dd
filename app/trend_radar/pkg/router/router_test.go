package router

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	model, system, prompt string
}

type fakeCompleter struct {
	calls   []call
	replies map[string]string
	errs    map[string]error
}

func (f *fakeCompleter) Complete(_ context.Context, model, system, prompt string) (string, error) {
	f.calls = append(f.calls, call{model, system, prompt})
	if err := f.errs[model]; err != nil {
		return "", err
	}
	return f.replies[model], nil
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestGenerate_PrimarySucceeds(t *testing.T) {
	f := &fakeCompleter{replies: map[string]string{"primary": "  ok  "}}
	r := New(f, "primary", "fallback", quietLog())

	out, err := r.Generate(context.Background(), "p", "s")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Len(t, f.calls, 1)
}

func TestGenerate_FallbackAfterFailure(t *testing.T) {
	f := &fakeCompleter{
		replies: map[string]string{"fallback": "from fallback"},
		errs:    map[string]error{"primary": errors.New("status 502")},
	}
	r := New(f, "primary", "fallback", quietLog())

	out, err := r.Generate(context.Background(), "prompt", "system")
	require.NoError(t, err)
	assert.Equal(t, "from fallback", out)
	require.Len(t, f.calls, 2)
	assert.Equal(t, call{"primary", "system", "prompt"}, f.calls[0])
	assert.Equal(t, call{"fallback", "system", "prompt"}, f.calls[1])
}

func TestGenerate_EmptyResponseFallsBack(t *testing.T) {
	f := &fakeCompleter{replies: map[string]string{"primary": " \n", "fallback": "x"}}
	r := New(f, "primary", "fallback", quietLog())

	out, err := r.Generate(context.Background(), "p", "s")
	require.NoError(t, err)
	assert.Equal(t, "x", out)
	assert.Len(t, f.calls, 2)
}

func TestGenerate_BothFail(t *testing.T) {
	last := errors.New("fallback timeout")
	f := &fakeCompleter{errs: map[string]error{
		"primary":  errors.New("primary down"),
		"fallback": last,
	}}
	r := New(f, "primary", "fallback", quietLog())

	_, err := r.Generate(context.Background(), "p", "s")
	require.Error(t, err)

	var gf *GenerationFailure
	require.True(t, errors.As(err, &gf))
	assert.Equal(t, "fallback", gf.Model)
	assert.ErrorIs(t, err, last)
	assert.Len(t, f.calls, 2)
}

func TestNew_DefaultsFallbackToPrimary(t *testing.T) {
	f := &fakeCompleter{errs: map[string]error{"only": errors.New("down")}}
	r := New(f, "only", "", nil)

	_, err := r.Generate(context.Background(), "p", "s")
	require.Error(t, err)
	require.Len(t, f.calls, 2)
	assert.Equal(t, "only", f.calls[1].model)
}
