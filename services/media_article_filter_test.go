package services

import (
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IbroIT/SU-back-back-sub001/models"
	"github.com/IbroIT/SU-back-back-sub001/testutil"
)

func parseFilter(t *testing.T, raw string) (*MediaArticleFilter, FieldErrors) {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	f, err := ParseMediaArticleFilter(v)
	if err == nil {
		return f, nil
	}
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	return nil, fe
}

func TestFilterRejectsInvertedImportanceRange(t *testing.T) {
	_, fe := parseFilter(t, "importance_min=8&importance_max=3")
	require.NotNil(t, fe)
	assert.Contains(t, fe, "importance_min")
}

func TestFilterRejectsBadParams(t *testing.T) {
	cases := map[string]string{
		"importance_min=0":                        "importance_min",
		"importance_max=11":                       "importance_max",
		"sentiment=angry":                         "sentiment",
		"category=abc":                            "category",
		"outlet=-1":                               "outlet",
		"date_from=2026-13-01":                    "date_from",
		"date_from=2026-10-05&date_to=2026-10-01": "date_from",
		"featured=maybe":                          "featured",
		"sort=title":                              "sort",
		"sort=-password":                          "sort",
		"page=0":                                  "page",
		"page_size=x":                             "page_size",
	}
	for raw, field := range cases {
		_, fe := parseFilter(t, raw)
		if assert.NotNil(t, fe, raw) {
			assert.Contains(t, fe, field, raw)
		}
	}
}

func TestFilterDefaults(t *testing.T) {
	f, fe := parseFilter(t, "page_size=1000&sort=-reach&importance_min=3&importance_max=3")
	require.Nil(t, fe)
	assert.Equal(t, MaxPageSize, f.PageSize)
	assert.Equal(t, 1, f.Page.Page)
	assert.Equal(t, "-reach", f.Sort)

	f, fe = parseFilter(t, "")
	require.Nil(t, fe)
	assert.Equal(t, DefaultMediaSort, f.Sort)
	assert.Equal(t, DefaultPageSize, f.PageSize)
}

func TestSearchComposesFilters(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewMediaArticleService(db)
	ctx := context.Background()
	outlet := createOutlet(t, db, "24.kg")
	other := createOutlet(t, db, "Kaktus")
	science := createCategory(t, db, "science")

	a := article(outlet.ID, "Robotics lab", true, mustDate(t, "2026-10-01"))
	a.Keywords = models.TranslatedText{KG: "роботтор, Robotics"}
	a.ImportanceScore = 9
	a.Sentiment = models.SentimentPositive
	a.CategoryID = &science.ID
	a.Reach = 500
	require.NoError(t, svc.Create(ctx, a))

	b := article(other.ID, "Budget news", true, mustDate(t, "2026-10-05"))
	b.ImportanceScore = 4
	b.Reach = 100
	require.NoError(t, svc.Create(ctx, b))

	hidden := article(outlet.ID, "Robotics draft", false, mustDate(t, "2026-10-02"))
	require.NoError(t, svc.Create(ctx, hidden))

	var total int64
	search := func(raw string) []uint {
		f, fe := parseFilter(t, raw)
		require.Nil(t, fe, raw)
		items, n, err := svc.Search(ctx, f)
		require.NoError(t, err)
		total = n
		ids := make([]uint, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		return ids
	}

	assert.Equal(t, []uint{b.ID, a.ID}, search(""))
	assert.EqualValues(t, 2, total)
	assert.Equal(t, []uint{a.ID}, search("q=ROBOTICS"))
	assert.Equal(t, []uint{a.ID}, search("q=robotics&sentiment=positive&importance_min=8"))
	assert.Empty(t, search("q=robotics&sentiment=negative"))
	assert.Equal(t, []uint{a.ID}, search("category="+fmt.Sprint(science.ID)))
	assert.Equal(t, []uint{b.ID}, search("outlet="+fmt.Sprint(other.ID)))
	assert.Equal(t, []uint{a.ID}, search("date_from=2026-10-01&date_to=2026-10-01"))
	assert.Equal(t, []uint{b.ID, a.ID}, search("date_to=2026-10-05"))
	assert.Equal(t, []uint{a.ID, b.ID}, search("sort=-reach"))
	assert.Equal(t, []uint{b.ID, a.ID}, search("sort=importance_score"))
	assert.Equal(t, []uint{a.ID}, search("page=2&page_size=1"))
	// total считается без учёта страницы
	assert.EqualValues(t, 2, total)
}
