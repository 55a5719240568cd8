package order

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrders(t *testing.T) {
	data := strings.Join([]string{
		"order_id,status,item",
		"12345,shipped,Wireless Mouse",
		"23456,processing,Mechanical Keyboard",
		"00042,processing,Leading Zero Widget",
	}, "\n")

	store := NewStore()
	loaded, err := ReadOrders(strings.NewReader(data), store)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded)

	// ids stay opaque strings, formatting preserved
	o := store.Get("00042")
	require.NotNil(t, o)
	assert.Equal(t, "Leading Zero Widget", o.Item)
	assert.Nil(t, store.Get("42"))
}

func TestReadOrders_SkipsIncompleteRows(t *testing.T) {
	data := strings.Join([]string{
		"order_id,status,item",
		"1,processing,Good Row",
		",processing,No ID",
		"2,,No Status",
		"3,shipped,",
		"4,processing",
		"5,shipped,Also Good",
	}, "\n")

	store := NewStore()
	loaded, err := ReadOrders(strings.NewReader(data), store)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.NotNil(t, store.Get("1"))
	assert.NotNil(t, store.Get("5"))
	assert.Nil(t, store.Get("2"))
	assert.Nil(t, store.Get("3"))
	assert.Nil(t, store.Get("4"))
}

func TestReadOrders_DuplicateKeepsFirst(t *testing.T) {
	data := strings.Join([]string{
		"order_id,status,item",
		"1,processing,First",
		"1,shipped,Second",
	}, "\n")

	store := NewStore()
	loaded, err := ReadOrders(strings.NewReader(data), store)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)
	assert.Equal(t, "First", store.Get("1").Item)
}

func TestReadOrders_SkipsUnparseableRows(t *testing.T) {
	data := strings.Join([]string{
		"order_id,status,item",
		"1,processing,Good Row",
		`2,ship"ped,Bare Quote`,
		"3,shipped,Also Good",
	}, "\n")

	store := NewStore()
	loaded, err := ReadOrders(strings.NewReader(data), store)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.NotNil(t, store.Get("1"))
	assert.Nil(t, store.Get("2"))
	assert.NotNil(t, store.Get("3"))
}

// brokenReader yields its buffered prefix, then fails every subsequent read.
type brokenReader struct {
	prefix io.Reader
	err    error
}

func (r *brokenReader) Read(p []byte) (int, error) {
	n, err := r.prefix.Read(p)
	if n > 0 {
		return n, nil
	}
	if err == io.EOF {
		return 0, r.err
	}
	return n, err
}

func TestReadOrders_ReaderFailureReturns(t *testing.T) {
	readErr := errors.New("disk read failed")
	r := &brokenReader{
		prefix: strings.NewReader("order_id,status,item\n1,processing,Good Row\n"),
		err:    readErr,
	}

	store := NewStore()
	loaded, err := ReadOrders(r, store)
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.Equal(t, 1, loaded)
	assert.NotNil(t, store.Get("1"))
}

func TestReadOrders_MissingColumn(t *testing.T) {
	store := NewStore()
	_, err := ReadOrders(strings.NewReader("order_id,item\n1,Widget\n"), store)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

func TestReadOrders_ReordersColumns(t *testing.T) {
	data := strings.Join([]string{
		"item,order_id,status",
		"Wireless Mouse,12345,shipped",
	}, "\n")

	store := NewStore()
	loaded, err := ReadOrders(strings.NewReader(data), store)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)
	o := store.Get("12345")
	require.NotNil(t, o)
	assert.Equal(t, StatusShipped, o.Status)
	assert.Equal(t, "Wireless Mouse", o.Item)
}
