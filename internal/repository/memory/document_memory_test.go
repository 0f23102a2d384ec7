package memory

import (
	"context"
	"sort"
	"sync"
	"testing"

	"docintake/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndFindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentMemory()

	created, err := repo.Create(ctx, repository.CreateDocument{
		FirstName:     "John",
		LastName:      "Doe",
		DateOfBirth:   "1994-01-01",
		FullName:      "John Doe",
		Age:           30,
		ExtractedText: "some text",
		FileName:      "cv.pdf",
		FileType:      "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
}

func TestFindByID_NeverIssuedIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentMemory()

	_, err := repo.Create(ctx, repository.CreateDocument{FirstName: "A"})
	require.NoError(t, err)

	for _, id := range []int64{0, -1, 2, 999999} {
		_, err := repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound, "id %d", id)
	}
}

func TestCreate_SequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentMemory()

	for i := int64(1); i <= 5; i++ {
		doc, err := repo.Create(ctx, repository.CreateDocument{FirstName: "A"})
		require.NoError(t, err)
		assert.Equal(t, i, doc.ID)
	}
}

func TestCreate_ConcurrentIDsAreContiguous(t *testing.T) {
	const n = 100
	ctx := context.Background()
	repo := NewDocumentMemory()

	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := repo.Create(ctx, repository.CreateDocument{FirstName: "A"})
			if err != nil {
				t.Errorf("create %d: %v", i, err)
				return
			}
			ids[i] = doc.ID
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i := 0; i < n; i++ {
		assert.Equal(t, int64(i+1), ids[i])
	}
}

func TestFindByID_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentMemory()

	created, err := repo.Create(ctx, repository.CreateDocument{FirstName: "John"})
	require.NoError(t, err)

	first, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	first.FirstName = "mutated"

	second, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", second.FirstName)
}

func TestCreate_CancelledContext(t *testing.T) {
	repo := NewDocumentMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Create(ctx, repository.CreateDocument{})
	assert.ErrorIs(t, err, context.Canceled)
}
