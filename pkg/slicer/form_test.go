package slicer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDriver() *FormDriver {
	return &FormDriver{
		TargetURL:     "https://example.org/dataslicer",
		FieldTimeout:  100 * time.Millisecond,
		SettleTimeout: 10 * time.Millisecond,
	}
}

func TestFillAndSubmit_SetsEveryFieldOnce(t *testing.T) {
	page := newFakePage()
	req := validRequest(t)

	err := testDriver().FillAndSubmit(context.Background(), page, req)
	require.NoError(t, err)

	sets := []string{
		"fill:" + jobNameSelector + "=J2807",
		"select:" + formatSelector + "=VCF",
		"fill:" + regionSelector + "=3:146142335-146301179",
		"fill:" + genotypeSelector + "=" + req.GenotypeURL,
		`check:input[value="populations"]`,
		"fill:" + mappingSelector + "=" + req.MappingURL,
		"select:" + populationSelector + "=CEU",
	}
	for _, op := range sets {
		assert.Equal(t, 1, page.count(op), "expected exactly one %s", op)
	}
}

func TestFillAndSubmit_SubmitIsLast(t *testing.T) {
	page := newFakePage()
	req := validRequest(t)

	err := testDriver().FillAndSubmit(context.Background(), page, req)
	require.NoError(t, err)

	submit := page.indexOf("click:" + runButtonSelector)
	require.GreaterOrEqual(t, submit, 0, "form was never submitted")
	assert.Equal(t, len(page.ops)-1, submit, "submit must be the final interaction")
}

func TestFillAndSubmit_WaitsBeforeEachField(t *testing.T) {
	page := newFakePage()
	req := validRequest(t)

	err := testDriver().FillAndSubmit(context.Background(), page, req)
	require.NoError(t, err)

	pairs := map[string]string{
		"wait:" + jobNameSelector:    "fill:" + jobNameSelector + "=J2807",
		"wait:" + regionSelector:     "fill:" + regionSelector + "=3:146142335-146301179",
		"wait:" + formatSelector:     "select:" + formatSelector + "=VCF",
		"wait:" + populationSelector: "select:" + populationSelector + "=CEU",
	}
	for wait, set := range pairs {
		waitAt := page.indexOf(wait)
		setAt := page.indexOf(set)
		require.GreaterOrEqual(t, waitAt, 0, "missing %s", wait)
		require.GreaterOrEqual(t, setAt, 0, "missing %s", set)
		assert.Less(t, waitAt, setAt, "%s must precede %s", wait, set)
	}
}

func TestFillAndSubmit_FieldNeverReady(t *testing.T) {
	page := newFakePage()
	page.waitErrs[regionSelector] = errors.New("element not visible")
	req := validRequest(t)

	err := testDriver().FillAndSubmit(context.Background(), page, req)
	require.Error(t, err)

	var formErr *FormInteractionError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "region", formErr.Field)

	// A form with an unready field must never be submitted.
	assert.Equal(t, -1, page.indexOf("click:"+runButtonSelector))
}

func TestFillAndSubmit_NullFilterSkipsPopulationFields(t *testing.T) {
	page := newFakePage()
	req := validRequest(t)
	req.Filter = FilterNone
	req.MappingURL = ""
	req.Populations = nil

	err := testDriver().FillAndSubmit(context.Background(), page, req)
	require.NoError(t, err)

	assert.Equal(t, 1, page.count(`check:input[value="null"]`))
	assert.Equal(t, -1, page.indexOf("wait:"+mappingSelector))
	assert.Equal(t, -1, page.indexOf("wait:"+populationSelector))
}

func TestFillAndSubmit_DismissesConsentBanner(t *testing.T) {
	page := newFakePage()
	page.visible[gdprAgreeSelector] = true
	req := validRequest(t)

	err := testDriver().FillAndSubmit(context.Background(), page, req)
	require.NoError(t, err)

	banner := page.indexOf("click:" + gdprAgreeSelector)
	firstFill := page.indexOf("fill:" + jobNameSelector + "=J2807")
	require.GreaterOrEqual(t, banner, 0)
	assert.Less(t, banner, firstFill, "banner must be dismissed before filling")
}

func TestFillAndSubmit_MultiplePopulations(t *testing.T) {
	page := newFakePage()
	req := validRequest(t)
	req.Populations = []string{"CEU", "GBR"}

	err := testDriver().FillAndSubmit(context.Background(), page, req)
	require.NoError(t, err)

	for _, code := range req.Populations {
		assert.Equal(t, 1, page.count(fmt.Sprintf("select:%s=%s", populationSelector, code)))
	}
}

func TestFillAndSubmit_CancelledContext(t *testing.T) {
	page := newFakePage()
	req := validRequest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testDriver().FillAndSubmit(ctx, page, req)
	require.Error(t, err)

	var formErr *FormInteractionError
	require.ErrorAs(t, err, &formErr)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, -1, page.indexOf("click:"+runButtonSelector))
}
