package services

import (
	"context"
	"svd_ambalaj_server/database/dbtest"
	"svd_ambalaj_server/structs"
	"svd_ambalaj_server/structs/tables"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSampleRequest(t *testing.T) {
	db := dbtest.New(t)
	notifier := &recordingNotifier{}
	ss := NewSampleService(testLogger(), db, notifier)
	ctx := context.Background()

	sample, err := ss.CreateSampleRequest(ctx, structs.SamplePayload{
		Name:     " Zeynep ",
		Product:  "Kraft bag",
		Quantity: 250.0,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sample.ID)
	assert.Equal(t, "Zeynep", sample.Name)
	assert.Equal(t, "250", sample.Quantity)
	assert.Equal(t, "requested", sample.Status)
	assert.Equal(t, "", sample.Company)

	empty, err := ss.CreateSampleRequest(ctx, structs.SamplePayload{})
	require.NoError(t, err)
	assert.Equal(t, "", empty.Quantity)

	count, err := db.NewSelect().Model((*tables.SampleRequest)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, notifier.samples, 2)
}
