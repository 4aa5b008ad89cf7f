package catalog

import (
	"context"
	"errors"
	"testing"

	"equipment-validator/core/ofsc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type mockLister struct {
	mock.Mock
}

func (m *mockLister) EnumerationList(ctx context.Context, label string, limit, offset int) (*ofsc.EnumerationPage, error) {
	args := m.Called(ctx, label, limit, offset)
	if p := args.Get(0); p != nil {
		return p.(*ofsc.EnumerationPage), args.Error(1)
	}
	return nil, args.Error(1)
}

func item(label string, translations ...ofsc.Translation) ofsc.EnumerationItem {
	return ofsc.EnumerationItem{Label: label, Active: true, Translations: translations}
}

func TestPreload(t *testing.T) {
	t.Run("WalksPages", func(t *testing.T) {
		l := new(mockLister)
		l.On("EnumerationList", mock.Anything, "XI_EQUIPMENTTYPE", 2, 0).Return(&ofsc.EnumerationPage{
			Items: []ofsc.EnumerationItem{
				item("EQ1", ofsc.Translation{Language: "en", Name: "Decoder"}, ofsc.Translation{Language: "es", Name: "Decodificador"}),
				item("EQ2", ofsc.Translation{Language: "en", Name: "Router"}),
			},
			HasMore: true,
		}, nil).Once()
		l.On("EnumerationList", mock.Anything, "XI_EQUIPMENTTYPE", 2, 2).Return(&ofsc.EnumerationPage{
			Items: []ofsc.EnumerationItem{item("EQ3")},
		}, nil).Once()

		c := New(l, "XI_EQUIPMENTTYPE", 2, Config{TTLSeconds: 60, Languages: "es,en"}, nil)
		require.NoError(t, c.Preload(context.Background()))

		assert.Equal(t, "Decodificador", c.Describe("EQ1"))
		assert.Equal(t, "Router", c.Describe("EQ2"))
		assert.Equal(t, "EQ3", c.Describe("EQ3"))
		assert.Equal(t, Unknown, c.Describe("EQ9"))
		assert.Equal(t, 3, c.Len())
		assert.True(t, c.Loaded())

		// A fresh catalog does not fetch again.
		require.NoError(t, c.Preload(context.Background()))
		l.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		l := new(mockLister)
		l.On("EnumerationList", mock.Anything, "XI_EQUIPMENTTYPE", 100, 0).Return(nil, errors.New("boom"))

		c := New(l, "XI_EQUIPMENTTYPE", 0, Config{}, nil)
		err := c.Preload(context.Background())
		assert.Error(t, err)
		assert.False(t, c.Loaded())
	})
}

func TestPick_PreferenceOrder(t *testing.T) {
	c := New(new(mockLister), "X", 10, Config{Languages: "en"}, nil)
	got := c.pick(item("EQ1",
		ofsc.Translation{Language: "es", Name: "Decodificador"},
		ofsc.Translation{Language: "en-US", Name: "Decoder"},
	))
	assert.Equal(t, "Decoder", got)

	got = c.pick(item("EQ2", ofsc.Translation{Language: "fr", Name: "Décodeur"}))
	assert.Equal(t, "EQ2", got)
}

func TestParseLanguages(t *testing.T) {
	assert.Equal(t, []language.Tag{language.English, language.Spanish}, ParseLanguages("en, es"))
	assert.Equal(t, []language.Tag{language.Spanish, language.English}, ParseLanguages(""))
	assert.Equal(t, []language.Tag{language.Spanish, language.English}, ParseLanguages("!!, ,"))
}

func TestSetDescribe(t *testing.T) {
	c := New(new(mockLister), "X", 10, Config{}, nil)
	c.Set("EQ1", "Decoder")
	assert.Equal(t, "Decoder", c.Describe("EQ1"))
	c.Set("EQ2", "")
	assert.Equal(t, Unknown, c.Describe("EQ2"))
}
