package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paygrid/paygrid/pkg/models"
	"github.com/paygrid/paygrid/pkg/persistence/file"
)

func newTestService(t *testing.T) *Job {
	t.Helper()

	return NewJob(file.NewPersistence(t.TempDir()))
}

func TestJob_Create_ScaffoldsAndPersists(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, "My Job", "a test job", "user-1")
	require.NoError(t, err)
	require.Len(t, created.Nodes, 2)

	loaded, err := service.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "My Job", loaded.Name)
	assert.Equal(t, "user-1", loaded.Owner)
	assert.Len(t, loaded.TriggerNodes(), 1)
	assert.Len(t, loaded.OutputNodes(), 1)
}

func TestJob_Create_RequiresName(t *testing.T) {
	service := newTestService(t)

	_, err := service.Create(context.Background(), "   ", "", "user-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrJobNameRequired)
	assert.True(t, IsValidationError(err))
}

func TestJob_FetchByID_NotFound(t *testing.T) {
	service := newTestService(t)

	_, err := service.FetchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJob_List_FiltersByOwner(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	_, err := service.Create(ctx, "Job A", "", "alice")
	require.NoError(t, err)
	_, err = service.Create(ctx, "Job B", "", "bob")
	require.NoError(t, err)

	all, err := service.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := service.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Job A", mine[0].Name)
}

func TestJob_AddNode_PersistsMutation(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, "My Job", "", "user-1")
	require.NoError(t, err)

	node := &models.Node{
		Type:     models.NodeTypeResource,
		Name:     "Summarizer",
		Resource: &models.ResourceData{Ref: models.ResourceRef{ID: "sum", Name: "Summarizer"}},
	}

	updated, err := service.AddNode(ctx, created.ID, node)
	require.NoError(t, err)
	assert.Len(t, updated.Nodes, 3)
	assert.NotEmpty(t, node.ID)

	loaded, err := service.FetchByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Node(node.ID))
}

func TestJob_AddNode_RejectsUnknownType(t *testing.T) {
	service := newTestService(t)

	_, err := service.AddNode(context.Background(), "any", &models.Node{Type: "widget"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidNodeType)
}

func TestJob_UpdateNode_TypeImmutable(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, "My Job", "", "user-1")
	require.NoError(t, err)

	node := &models.Node{
		Type:     models.NodeTypeResource,
		Resource: &models.ResourceData{},
	}
	_, err = service.AddNode(ctx, created.ID, node)
	require.NoError(t, err)

	_, err = service.UpdateNode(ctx, created.ID, node.ID, &models.Node{
		Type:   models.NodeTypeSource,
		Source: &models.SourceData{Kind: models.SourceKindURLFetch},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidNodeType)
}

func TestJob_DeleteNode_DowngradesReferencesIntoIt(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, "My Job", "", "user-1")
	require.NoError(t, err)

	source := &models.Node{
		ID:       "res-source",
		Type:     models.NodeTypeResource,
		Resource: &models.ResourceData{},
	}
	consumer := &models.Node{
		ID:   "res-consumer",
		Type: models.NodeTypeResource,
		Resource: &models.ResourceData{
			ConfiguredInputs: map[string]models.ConfiguredInput{
				"text": {Kind: models.InputKindReference, SourceNodeID: "res-source"},
			},
		},
	}

	_, err = service.AddNode(ctx, created.ID, source)
	require.NoError(t, err)
	_, err = service.AddNode(ctx, created.ID, consumer)
	require.NoError(t, err)

	updated, err := service.DeleteNode(ctx, created.ID, "res-source")
	require.NoError(t, err)

	input := updated.Node("res-consumer").Resource.ConfiguredInputs["text"]
	assert.Equal(t, models.ConfiguredInput{Kind: models.InputKindStatic, Value: ""}, input)
}

func TestJob_ConnectAndDisconnect(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, "My Job", "", "user-1")
	require.NoError(t, err)

	triggerID := created.TriggerNodes()[0].ID
	outputID := created.OutputNodes()[0].ID

	updated, err := service.Connect(ctx, created.ID, triggerID, outputID)
	require.NoError(t, err)
	require.Len(t, updated.Edges, 1)

	updated, err = service.Disconnect(ctx, created.ID, updated.Edges[0].ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Edges)
}

func TestJob_Connect_MissingNode(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, "My Job", "", "user-1")
	require.NoError(t, err)

	_, err = service.Connect(ctx, created.ID, "ghost", created.OutputNodes()[0].ID)
	assert.ErrorIs(t, err, models.ErrNodeNotFound)
}

func TestJob_Update_RequiresTrigger(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, "My Job", "", "user-1")
	require.NoError(t, err)

	replacement := created.Clone()
	replacement.Nodes = []*models.Node{created.OutputNodes()[0]}

	_, err = service.Update(ctx, created.ID, replacement)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTriggerNodeRequired)
}

func TestJob_Delete(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	created, err := service.Create(ctx, "My Job", "", "user-1")
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.FetchByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)

	assert.ErrorIs(t, service.Delete(ctx, created.ID), ErrJobNotFound)
}
