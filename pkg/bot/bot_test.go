package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"

	"taxiservice/config"
	"taxiservice/pkg/logger"
	"taxiservice/pkg/models"
)

func TestParseListArgs(t *testing.T) {
	tests := []struct {
		args  []string
		query string
		page  int
	}{
		{nil, "", 1},
		{[]string{"3"}, "", 3},
		{[]string{"john"}, "john", 1},
		{[]string{"john", "2"}, "john", 2},
		{[]string{"land", "cruiser", "2"}, "land cruiser", 2},
		{[]string{"model", "0"}, "model 0", 1},
		{[]string{"-1"}, "-1", 1},
	}
	for _, tt := range tests {
		query, page := parseListArgs(tt.args)
		assert.Equal(t, tt.query, query, tt.args)
		assert.Equal(t, tt.page, page, tt.args)
	}
}

func TestFormatPage(t *testing.T) {
	f := listFormat[string]{title: "Things", empty: "Nothing here.", line: strings.ToUpper}

	out := formatPage(f, "", &models.Page[string]{Items: []string{}, Number: 1, Size: 5})
	assert.Equal(t, "📭 Nothing here.", out)

	out = formatPage(f, "b", &models.Page[string]{Items: []string{"f", "g"}, Number: 2, Size: 5, Total: 7})
	assert.Contains(t, out, `Things matching "b"`)
	assert.Contains(t, out, "Page 2 of 2, 7 total")
	assert.Contains(t, out, "6. F")
	assert.Contains(t, out, "7. G")

	out = formatPage(f, "", &models.Page[string]{Items: []string{}, Number: 4, Size: 5, Total: 7})
	assert.Contains(t, out, "Nothing on this page.")
	assert.NotContains(t, out, "Nothing here.")
}

func TestRenderListPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(context.Context, string, int) (*models.Page[string], error) { return nil, boom }
	_, _, err := renderList(context.Background(), fetch, "", 1, listFormat[string]{})
	assert.ErrorIs(t, err, boom)
}

func TestDriverListFormat(t *testing.T) {
	d := &models.Driver{Username: "john_doe", FirstName: "John", LastName: "Doe", LicenseNumber: "JDO12345"}
	assert.Equal(t, "john_doe | John Doe | JDO12345", driverListFormat.line(d))
	assert.Equal(t, "jane", driverListFormat.line(&models.Driver{Username: "jane"}))
}

func TestPageMarkup(t *testing.T) {
	assert.Nil(t, pageMarkup(kindCars, "", 1, 1))

	menu := pageMarkup(kindCars, "Model", 2, 3)
	require.NotNil(t, menu)
	require.Len(t, menu.InlineKeyboard, 1)
	row := menu.InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.Equal(t, pageUnique, row[0].Unique)
	assert.Equal(t, "cars|1|Model", row[0].Data)
	assert.Equal(t, "cars|3|Model", row[1].Data)

	menu = pageMarkup(kindCars, "", 5, 3)
	require.NotNil(t, menu)
	assert.Equal(t, "cars|3|", menu.InlineKeyboard[0][0].Data)

	assert.Nil(t, pageMarkup(kindCars, strings.Repeat("x", 60), 1, 2))
}

func TestParsePageData(t *testing.T) {
	kind, query, page, ok := parsePageData("drivers|2|john|doe")
	require.True(t, ok)
	assert.Equal(t, kindDrivers, kind)
	assert.Equal(t, "john|doe", query)
	assert.Equal(t, 2, page)

	_, query, _, ok = parsePageData("cars|1|")
	require.True(t, ok)
	assert.Equal(t, "", query)

	for _, bad := range []string{"", "cars", "planes|1|x", "cars|x|y", "cars|0|y"} {
		_, _, _, ok := parsePageData(bad)
		assert.False(t, ok, bad)
	}
}

func TestAdminOnly(t *testing.T) {
	tb, err := tele.NewBot(tele.Settings{Offline: true})
	require.NoError(t, err)
	b := &Bot{Bot: tb, Log: logger.NewNop(), Cfg: &config.Config{AdminID: 42}}

	called := false
	handler := b.adminOnly(func(tele.Context) error {
		called = true
		return nil
	})

	ctx := tb.NewContext(tele.Update{Message: &tele.Message{Sender: &tele.User{ID: 7}}})
	require.NoError(t, handler(ctx))
	assert.False(t, called)

	ctx = tb.NewContext(tele.Update{Message: &tele.Message{Sender: &tele.User{ID: 42}}})
	require.NoError(t, handler(ctx))
	assert.True(t, called)
}
