package provider

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend returns scripted responses per model name.
type fakeBackend struct {
	responses map[string]string
	errs      map[string]error
	calls     []string
}

func (f *fakeBackend) Generate(_ context.Context, model string, _ Kind, _ Payload) (string, error) {
	f.calls = append(f.calls, model)
	if err, ok := f.errs[model]; ok {
		return "", err
	}
	return f.responses[model], nil
}

func (f *fakeBackend) Close() error { return nil }

type recordingSink struct {
	attempts []Attempt
}

func (r *recordingSink) Record(a Attempt) { r.attempts = append(r.attempts, a) }

func specFor(id string, rank int, kinds ...Kind) Spec {
	return Spec{ID: id, Model: id, Rank: rank, Kinds: kinds}
}

func TestGatewayRankedFiltersAndOrders(t *testing.T) {
	gw := NewGateway()
	be := &fakeBackend{}
	gw.Register(specFor("c", 2, KindScoring), be)
	gw.Register(specFor("a", 0, KindMultimodal, KindScoring), be)
	gw.Register(specFor("b", 1, KindStructured), be)

	scoring := gw.Ranked(KindScoring)
	require.Len(t, scoring, 2)
	assert.Equal(t, "a", scoring[0].ID)
	assert.Equal(t, "c", scoring[1].ID)

	assert.Empty(t, gw.Ranked("unknown"))
}

func TestGatewayInvokeSuccess(t *testing.T) {
	gw := NewGateway()
	be := &fakeBackend{responses: map[string]string{"a": `{"ok": true}`}}
	spec := specFor("a", 0, KindStructured)
	gw.Register(spec, be)

	sink := &recordingSink{}
	text, err := gw.Invoke(context.Background(), "structure-resume", spec, KindStructured, Payload{Prompt: "p"}, sink)
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, text)

	require.Len(t, sink.attempts, 1)
	assert.Equal(t, OutcomeSuccess, sink.attempts[0].Outcome)
	assert.Equal(t, "structure-resume", sink.attempts[0].Stage)
	assert.Equal(t, "a", sink.attempts[0].Provider)
}

func TestGatewayInvokeEmptyResponseIsBadOutput(t *testing.T) {
	gw := NewGateway()
	be := &fakeBackend{responses: map[string]string{"a": ""}}
	spec := specFor("a", 0, KindStructured)
	gw.Register(spec, be)

	sink := &recordingSink{}
	_, err := gw.Invoke(context.Background(), "stage", spec, KindStructured, Payload{}, sink)
	require.Error(t, err)
	assert.True(t, IsBadOutput(err))
	assert.Equal(t, ReasonBadOutput, sink.attempts[0].Reason)
}

func TestGatewayInvokeValidateHookClassifiesBadOutput(t *testing.T) {
	gw := NewGateway()
	be := &fakeBackend{responses: map[string]string{"a": `{"wrong": "shape"}`}}
	spec := specFor("a", 0, KindStructured)
	gw.Register(spec, be)

	sink := &recordingSink{}
	p := Payload{Validate: func(string) error { return fmt.Errorf("field missing") }}
	_, err := gw.Invoke(context.Background(), "stage", spec, KindStructured, p, sink)
	require.Error(t, err)
	assert.True(t, IsBadOutput(err))
	assert.Contains(t, sink.attempts[0].Detail, "field missing")
}

func TestGatewayInvokeQuotaDenialSkipsBackend(t *testing.T) {
	gw := NewGateway()
	be := &fakeBackend{responses: map[string]string{"a": "ok"}}
	spec := Spec{ID: "a", Model: "a", Rank: 0, Kinds: []Kind{KindStructured}, CallsPerMinute: 1}
	gw.Register(spec, be)

	sink := &recordingSink{}
	_, err := gw.Invoke(context.Background(), "stage", spec, KindStructured, Payload{}, sink)
	require.NoError(t, err)

	_, err = gw.Invoke(context.Background(), "stage", spec, KindStructured, Payload{}, sink)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	// Second call never reached the backend.
	assert.Len(t, be.calls, 1)
	require.Len(t, sink.attempts, 2)
	assert.Equal(t, ReasonRateLimited, sink.attempts[1].Reason)
}

func TestGatewayInvokePassesThroughBackendClassification(t *testing.T) {
	gw := NewGateway()
	be := &fakeBackend{errs: map[string]error{
		"a": &GatewayError{Provider: "a", Reason: ReasonRateLimited},
	}}
	spec := specFor("a", 0, KindScoring)
	gw.Register(spec, be)

	_, err := gw.Invoke(context.Background(), "match", spec, KindScoring, Payload{}, nil)
	assert.True(t, IsRateLimited(err))
}

func TestGatewayInvokeWrapsUnclassifiedErrors(t *testing.T) {
	gw := NewGateway()
	be := &fakeBackend{errs: map[string]error{"a": fmt.Errorf("connection reset")}}
	spec := specFor("a", 0, KindScoring)
	gw.Register(spec, be)

	_, err := gw.Invoke(context.Background(), "match", spec, KindScoring, Payload{}, nil)
	var ge *GatewayError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, ReasonUnavailable, ge.Reason)
}

func TestGatewayErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := &GatewayError{Provider: "p", Reason: ReasonUnavailable, Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unavailable")
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.in))
		})
	}
}
