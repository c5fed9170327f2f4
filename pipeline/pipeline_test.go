package pipeline

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spektr-org/fomezero/dataset"
	"github.com/spektr-org/fomezero/engine"
	"github.com/spektr-org/fomezero/views"
)

var sourceCSV = []byte("Restaurant ID,Restaurant Name,Country Code,City,Address,Longitude,Latitude,Cuisines," +
	"Average Cost for two,Currency,Has Online delivery,Is delivering now,Price range,Aggregate rating," +
	"Rating color,Rating text,Votes\n" +
	"6600681,Chez Michou,30,Brasília,Rua 1,-47.88,-15.79,\"Bakery, Cafe\",100,Brazilian Real(R$),0,0,3,4.9,3F7E00,Excellent,80\n" +
	"6601005,Vila Mamulengo,30,Rio de Janeiro,Rua 2,-43.18,-22.90,Brazilian,70,Brazilian Real(R$),1,1,2,3.5,9ACD32,Good,17\n" +
	"18242,Bukhara,1,New Delhi,ITC Maurya,77.17,28.59,North Indian,6500,Indian Rupees(Rs.),0,0,4,4.4,5BA829,Very Good,2826\n" +
	"18243,Karim's,1,New Delhi,Jama Masjid,77.23,28.65,Mughlai,700,Indian Rupees(Rs.),1,1,2,3.9,9ACD32,Good,900\n" +
	"77,Short Row,30\n")

func newPipeline(t *testing.T, cacheSize int) (*Pipeline, *dataset.Cache, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zomato.csv")
	require.NoError(t, os.WriteFile(path, sourceCSV, 0o644))
	cache, err := dataset.NewCache(cacheSize)
	require.NoError(t, err)
	return New(cache, zap.NewNop().Sugar()), cache, path
}

func TestRun_DefaultsToEveryCountry(t *testing.T) {
	t.Parallel()

	p, _, path := newPipeline(t, 2)
	res, err := p.Run(context.Background(), path, views.Overview, engine.DefaultCriteria(nil))
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []string{"Brazil", "India"}, res.Criteria.Countries)
	assert.Equal(t, 4, res.Page.RowCount)
	assert.Equal(t, 4, res.Filtered.Len())
	assert.Equal(t, 1, res.Table.DroppedRows())
	assert.Len(t, res.Page.Points, 4)
}

func TestRun_Filters(t *testing.T) {
	t.Parallel()

	p, _, path := newPipeline(t, 2)
	res, err := p.Run(context.Background(), path, views.Countries, engine.Criteria{
		Countries: []string{"India"},
		Rating:    engine.RatingRange{Low: 4, High: 9},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Page.RowCount)
	assert.Equal(t, engine.RatingRange{Low: 4, High: 5}, res.Criteria.Rating)
	assert.Equal(t, "Bukhara", res.Filtered.Dimension(0, "restaurant_name"))
}

func TestRun_DropsControlsTheViewLacks(t *testing.T) {
	t.Parallel()

	p, _, path := newPipeline(t, 2)
	criteria := engine.DefaultCriteria(nil)
	criteria.Cuisines = []string{"Nothing"}
	criteria.Cities = []string{"New Delhi"}

	res, err := p.Run(context.Background(), path, views.Cities, criteria)
	require.NoError(t, err)
	assert.Nil(t, res.Criteria.Cuisines)
	assert.Equal(t, 2, res.Page.RowCount)

	res, err = p.Run(context.Background(), path, views.Cuisines, criteria)
	require.NoError(t, err)
	assert.Nil(t, res.Criteria.Cities)
	assert.Equal(t, 0, res.Page.RowCount)
	assert.Equal(t, []string{views.NoMatchesWarning}, res.Page.Warnings)
}

func TestRun_EmptyCountrySelection(t *testing.T) {
	t.Parallel()

	p, _, path := newPipeline(t, 2)
	res, err := p.Run(context.Background(), path, views.Overview, engine.Criteria{
		Countries: []string{},
		Rating:    engine.FullRange(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Page.RowCount)
	assert.Contains(t, res.Page.Warnings, views.NoMatchesWarning)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	p, _, path := newPipeline(t, 2)
	ctx := context.Background()

	_, err := p.Run(ctx, path, "nope", engine.DefaultCriteria(nil))
	var nf *engine.NotFoundError
	assert.ErrorAs(t, err, &nf)

	_, err = p.Run(ctx, path, views.Overview, engine.Criteria{Rating: engine.RatingRange{Low: 4, High: 2}})
	var ve *engine.ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = p.Run(ctx, filepath.Join(t.TempDir(), "missing.csv"), views.Overview, engine.DefaultCriteria(nil))
	var mse *dataset.MalformedSourceError
	assert.ErrorAs(t, err, &mse)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = p.Run(cancelled, path, views.Overview, engine.DefaultCriteria(nil))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_UsesCache(t *testing.T) {
	t.Parallel()

	p, cache, path := newPipeline(t, 2)
	first, err := p.Run(context.Background(), path, views.Overview, engine.DefaultCriteria(nil))
	require.NoError(t, err)
	second, err := p.Run(context.Background(), path, views.Cities, engine.DefaultCriteria(nil))
	require.NoError(t, err)

	assert.Same(t, first.Table, second.Table)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, 1, cache.Len())
}

func TestExport(t *testing.T) {
	t.Parallel()

	p, _, path := newPipeline(t, 0)
	var buf bytes.Buffer
	err := p.Export(context.Background(), path, engine.Criteria{
		Countries: []string{"Brazil"},
		Rating:    engine.FullRange(),
		Cuisines:  []string{"Bakery"},
	}, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "restaurant_id,restaurant_name,country_code"))
	assert.True(t, strings.HasPrefix(lines[1], "6600681,Chez Michou,30"))
}

func TestExportSQLite(t *testing.T) {
	t.Parallel()

	p, _, path := newPipeline(t, 0)
	dbPath := filepath.Join(t.TempDir(), "out.db")
	require.NoError(t, p.ExportSQLite(context.Background(), path, engine.DefaultCriteria(nil), dbPath))

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM restaurants`).Scan(&n))
	assert.Equal(t, 4, n)
}

func TestOptionsAndMap(t *testing.T) {
	t.Parallel()

	p, _, path := newPipeline(t, 2)
	opts, err := p.Options(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brazil", "India"}, opts.Countries)
	assert.Equal(t, []string{"Bakery", "Brazilian", "North Indian", "Mughlai"}, opts.Cuisines)

	points, err := p.MapPoints(context.Background(), path, engine.Criteria{
		Countries: []string{"India"},
		Rating:    engine.FullRange(),
	})
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "Bukhara", points[0].RestaurantName)
	assert.Equal(t, 28.59, points[0].Latitude)
}
