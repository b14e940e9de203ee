package objectstore_test

import (
	"context"
	"testing"

	"github.com/book-expert/tts-chunker/internal/objectstore"
	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer starts an in-process JetStream server and returns a client.
func startTestServer(t *testing.T) jetstream.JetStream {
	t.Helper()

	opts := test.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	natsServer := test.RunServer(&opts)
	t.Cleanup(natsServer.Shutdown)

	natsConnection, err := nats.Connect(natsServer.ClientURL())
	require.NoError(t, err)
	t.Cleanup(natsConnection.Close)

	js, err := jetstream.New(natsConnection)
	require.NoError(t, err)

	return js
}

func TestNatsObjectStore_UploadDownload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	js := startTestServer(t)

	store, err := objectstore.New(ctx, js, "texts")
	require.NoError(t, err)
	assert.Equal(t, "texts", store.Bucket())

	uploadData := []byte("Тоо этегиндеги чакан айылда Асан аттуу бала жашачу.")

	require.NoError(t, store.Upload(ctx, "book-1.txt", uploadData))

	downloadData, err := store.Download(ctx, "book-1.txt")
	require.NoError(t, err)
	assert.Equal(t, uploadData, downloadData)

	require.NoError(t, store.Upload(ctx, "book-1.txt", []byte("жаңы")))

	downloadData, err = store.Download(ctx, "book-1.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("жаңы"), downloadData)
}

func TestNatsObjectStore_BindsExistingBucket(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	js := startTestServer(t)

	first, err := objectstore.New(ctx, js, "manifests")
	require.NoError(t, err)
	require.NoError(t, first.Upload(ctx, "a.chunks.json", []byte("{}")))

	second, err := objectstore.New(ctx, js, "manifests")
	require.NoError(t, err)

	data, err := second.Download(ctx, "a.chunks.json")
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), data)
}

func TestNatsObjectStore_MissingKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	js := startTestServer(t)

	store, err := objectstore.New(ctx, js, "texts")
	require.NoError(t, err)

	_, err = store.Download(ctx, "missing.txt")
	require.ErrorIs(t, err, objectstore.ErrNotFound)
}
