// SPDX-License-Identifier: ice License 1.0

package terror

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAs_SurvivesWrapping(t *testing.T) {
	t.Parallel()
	data := map[string]any{"originalError": "Invalid OAuth access token.", "code": 190}
	cause := errors.New("facebook graph request failed")
	err := errors.Wrapf(New(cause, data), "failed to get facebook pages")

	tErr := As(err)
	require.NotNil(t, tErr)
	assert.Equal(t, data, tErr.Data)
	assert.ErrorIs(t, err, cause)
}

func TestAs_PlainError(t *testing.T) {
	t.Parallel()
	require.Nil(t, As(errors.New("connection reset")))
	require.Nil(t, As(nil))
}
