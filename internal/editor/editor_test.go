package editor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Almas2004/led/internal/contentapi"
	"github.com/Almas2004/led/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type fakeStore struct {
	createFn func(ctx context.Context, d Draft) error
	updateFn func(ctx context.Context, id int64, d Draft) error
	creates  int
	updates  int
}

func (f *fakeStore) Create(ctx context.Context, d Draft) error {
	f.creates++
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeStore) Update(ctx context.Context, id int64, d Draft) error {
	f.updates++
	if f.updateFn != nil {
		return f.updateFn(ctx, id, d)
	}
	return nil
}

type failingReader struct{ t *testing.T }

func (r failingReader) Read([]byte) (int, error) {
	r.t.Fatal("reader must not be touched")
	return 0, io.EOF
}

func TestNewDraft_Templates(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	d, err := NewDraft(KindProducts, now)
	require.NoError(t, err)
	p := d.(*ProductDraft).Item
	assert.Equal(t, models.ScreenIndoor, p.Type)
	assert.Equal(t, "2.5", p.PixelPitch)
	require.NotNil(t, p.PriceFrom)
	assert.Zero(t, *p.PriceFrom)
	assert.Equal(t, "IP20", p.IPRating)
	assert.Equal(t, 1920, p.RefreshRate)
	assert.Equal(t, "item-1700000000123", p.Slug)

	d, err = NewDraft(KindSolutions, now)
	require.NoError(t, err)
	s := d.(*SolutionDraft).Item
	assert.Equal(t, 2.0, s.Area)
	assert.Equal(t, []string{"Экран", "Монтаж", "Настройка"}, []string(s.Included))

	d, err = NewDraft(KindCases, now)
	require.NoError(t, err)
	c := d.(*CaseDraft).Item
	assert.Equal(t, "Алматы", c.City)
	assert.Equal(t, "Реклама", c.Industry)
	assert.Equal(t, 5, c.Duration)

	for _, k := range Kinds() {
		d, err := NewDraft(k, now)
		require.NoError(t, err)
		assert.True(t, d.Common().IsFeatured, k)
		assert.Empty(t, d.Common().Images, k)
	}

	_, err = NewDraft("banners", now)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestFieldMapping(t *testing.T) {
	now := time.Now()
	product, _ := NewDraft(KindProducts, now)
	solution, _ := NewDraft(KindSolutions, now)
	kase, _ := NewDraft(KindCases, now)

	require.NoError(t, product.Set(FieldTitle, "P2.5 Indoor"))
	require.NoError(t, solution.Set(FieldTitle, "Stage kit"))
	require.NoError(t, kase.Set(FieldTitle, "Mega Mall"))
	assert.Equal(t, "P2.5 Indoor", product.(*ProductDraft).Item.Name)
	assert.Equal(t, "Stage kit", solution.(*SolutionDraft).Item.Name)
	assert.Equal(t, "Mega Mall", kase.(*CaseDraft).Item.Title)

	require.NoError(t, product.Set(FieldCategory, "outdoor"))
	require.NoError(t, kase.Set(FieldCategory, "Сцена"))
	assert.Equal(t, models.ScreenOutdoor, product.(*ProductDraft).Item.Type)
	assert.Equal(t, "Сцена", kase.(*CaseDraft).Item.Industry)
	assert.ErrorIs(t, product.Set(FieldCategory, "ceiling"), ErrInvalidValue)

	require.NoError(t, kase.Set(FieldSummary, "Facade screen"))
	require.NoError(t, kase.Set(FieldDetails, "P10 modules"))
	assert.Equal(t, "Facade screen", kase.(*CaseDraft).Item.Task)
	assert.Equal(t, "P10 modules", kase.(*CaseDraft).Item.SolutionDesc)

	require.NoError(t, product.Set(FieldPrice, "1500000"))
	got, err := product.Get(FieldPrice)
	require.NoError(t, err)
	assert.Equal(t, "1500000", got)
	require.NoError(t, product.Set(FieldPrice, ""))
	assert.Nil(t, product.(*ProductDraft).Item.PriceFrom)

	require.NoError(t, product.Set(FieldPurpose, "Реклама, Сцена,"))
	assert.Equal(t, []string{"Реклама", "Сцена"}, []string(product.(*ProductDraft).Item.Purpose))

	require.NoError(t, kase.Set(FieldDuration, "12"))
	assert.Equal(t, 12, kase.(*CaseDraft).Item.Duration)
	assert.ErrorIs(t, kase.Set(FieldDuration, "soon"), ErrInvalidValue)

	assert.ErrorIs(t, product.Set(FieldCity, "Астана"), ErrFieldNotSupported)
	assert.ErrorIs(t, kase.Set(FieldPrice, "10"), ErrFieldNotSupported)
	_, err = kase.Get(FieldPitch)
	assert.ErrorIs(t, err, ErrFieldNotSupported)

	assert.Contains(t, kase.Fields(), FieldCity)
	assert.NotContains(t, product.Fields(), FieldCity)
}

func TestCategoryOptions(t *testing.T) {
	assert.Equal(t, []string{"indoor", "outdoor"}, CategoryOptions(KindProducts))
	assert.Equal(t, []string{"Реклама", "Сцена", "Витрина", "Гос. сектор"}, CategoryOptions(KindCases))
}

func TestNormalizeSlug(t *testing.T) {
	cases := map[string]string{
		"Indoor P2 5":       "indoor-p2-5",
		"  Big\t\nScreen ":  "-big-screen-",
		"already-normal":    "already-normal",
		"Экран Сцена":       "экран-сцена",
		"multi   space run": "multi-space-run",
	}
	for in, want := range cases {
		got := NormalizeSlug(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, NormalizeSlug(got), "normalizing twice changes %q", in)
	}
}

func TestIngestImage(t *testing.T) {
	t.Run("oversized rejected without reading", func(t *testing.T) {
		_, err := IngestImage("big.png", MaxImageSize+1, failingReader{t})
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("exactly at limit accepted", func(t *testing.T) {
		data := append(append([]byte{}, pngHeader...), make([]byte, int(MaxImageSize)-len(pngHeader))...)
		uri, err := IngestImage("edge.png", MaxImageSize, bytes.NewReader(data))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
	})

	t.Run("understated size still capped", func(t *testing.T) {
		data := make([]byte, MaxImageSize+10)
		copy(data, pngHeader)
		_, err := IngestImage("liar.png", 10, bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrImageTooLarge)
	})

	t.Run("png encoded as data uri", func(t *testing.T) {
		uri, err := IngestImage("shot.png", int64(len(pngHeader)), bytes.NewReader(pngHeader))
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg==", uri)
	})

	t.Run("non image rejected", func(t *testing.T) {
		_, err := IngestImage("notes.txt", 5, strings.NewReader("hello"))
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := IngestImage("empty.png", 0, strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyImage)
	})
}

func TestValidate(t *testing.T) {
	for _, k := range Kinds() {
		d, err := NewDraft(k, time.Now())
		require.NoError(t, err)
		assert.ErrorIs(t, Validate(d), ErrImageRequired, k)

		d.setImage("data:image/png;base64,AA==")
		require.NoError(t, Validate(d), k)

		require.NoError(t, d.Set(FieldSlug, ""))
		assert.ErrorIs(t, Validate(d), ErrSlugRequired, k)
	}
}

func TestEditor_SaveRejectsInvalidWithoutStoreCall(t *testing.T) {
	store := &fakeStore{}
	refreshed := 0
	e := NewEditor(store, func(context.Context, Kind) error { refreshed++; return nil })

	for _, k := range Kinds() {
		require.NoError(t, e.Open(k))
		assert.ErrorIs(t, e.Save(context.Background()), ErrImageRequired)
		assert.Equal(t, StateCreating, e.State())

		require.NoError(t, e.AttachImage("a.png", int64(len(pngHeader)), bytes.NewReader(pngHeader)))
		require.NoError(t, e.Set(FieldSlug, ""))
		assert.ErrorIs(t, e.Save(context.Background()), ErrSlugRequired)
	}
	assert.Zero(t, store.creates)
	assert.Zero(t, store.updates)
	assert.Zero(t, refreshed)
}

func TestEditor_CreateThenRefresh(t *testing.T) {
	var saved *ProductDraft
	store := &fakeStore{createFn: func(_ context.Context, d Draft) error {
		saved = d.(*ProductDraft)
		return nil
	}}
	var refreshedKind Kind
	e := NewEditor(store, func(_ context.Context, k Kind) error { refreshedKind = k; return nil })
	e.now = func() time.Time { return time.UnixMilli(42) }

	require.NoError(t, e.Open(KindProducts))
	assert.Equal(t, "item-42", e.Draft().Common().Slug)
	require.NoError(t, e.Set(FieldSlug, "Indoor P2 5"))
	require.NoError(t, e.Set(FieldTitle, "Indoor P2.5"))
	require.NoError(t, e.AttachImage("a.png", int64(len(pngHeader)), bytes.NewReader(pngHeader)))

	require.NoError(t, e.Save(context.Background()))
	require.NotNil(t, saved)
	assert.Equal(t, "indoor-p2-5", saved.Item.Slug)
	assert.Len(t, saved.Item.Images, 1)
	assert.Equal(t, StateClosed, e.State())
	assert.Nil(t, e.Draft())
	assert.Equal(t, KindProducts, refreshedKind)
}

func TestEditor_EditUsesUpdate(t *testing.T) {
	var gotID int64
	store := &fakeStore{updateFn: func(_ context.Context, id int64, d Draft) error {
		gotID = id
		assert.Equal(t, "New title", d.(*CaseDraft).Item.Title)
		return nil
	}}
	e := NewEditor(store, nil)

	original := &models.Case{ID: 7, Slug: "mall", Title: "Old", Images: []string{"data:x"}}
	require.NoError(t, e.Edit(KindCases, original))
	id, editing := e.EditingID()
	assert.True(t, editing)
	assert.Equal(t, int64(7), id)

	require.NoError(t, e.Set(FieldTitle, "New title"))
	assert.Equal(t, "Old", original.Title)

	require.NoError(t, e.Save(context.Background()))
	assert.Equal(t, int64(7), gotID)
	assert.Equal(t, 1, store.updates)
	assert.Zero(t, store.creates)
}

func TestEditor_EditRejectsMismatchAndMissingID(t *testing.T) {
	e := NewEditor(&fakeStore{}, nil)
	assert.ErrorIs(t, e.Edit(KindProducts, &models.Case{ID: 1}), ErrKindMismatch)
	assert.ErrorIs(t, e.Edit(KindProducts, &models.Product{}), ErrMissingID)
	assert.Equal(t, StateClosed, e.State())
}

func TestEditor_StoreFailureKeepsDraft(t *testing.T) {
	conflict := errors.New("api error (409): slug already exists")
	e := NewEditor(&fakeStore{createFn: func(context.Context, Draft) error { return conflict }}, nil)

	require.NoError(t, e.Open(KindSolutions))
	require.NoError(t, e.AttachImage("a.png", int64(len(pngHeader)), bytes.NewReader(pngHeader)))

	err := e.Save(context.Background())
	var saveErr *SaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, KindSolutions, saveErr.Kind)
	assert.Equal(t, "create", saveErr.Op)
	assert.ErrorIs(t, err, conflict)
	assert.Equal(t, StateCreating, e.State())
	assert.NotNil(t, e.Draft())
}

func TestEditor_ClosedRejectsEdits(t *testing.T) {
	e := NewEditor(&fakeStore{}, nil)
	assert.ErrorIs(t, e.Set(FieldTitle, "x"), ErrEditorClosed)
	assert.ErrorIs(t, e.AttachImage("a.png", 1, strings.NewReader("x")), ErrEditorClosed)
	assert.ErrorIs(t, e.Save(context.Background()), ErrEditorClosed)
}

func TestEditor_RejectedImageLeavesDraft(t *testing.T) {
	e := NewEditor(&fakeStore{}, nil)
	require.NoError(t, e.Open(KindProducts))
	assert.ErrorIs(t, e.AttachImage("huge.png", MaxImageSize+1, failingReader{t}), ErrImageTooLarge)
	assert.Empty(t, e.Draft().Common().Images)
}

type fakeAPI struct {
	ContentAPI
	created []string
	updated map[int64]string
}

func (f *fakeAPI) CreateProduct(_ context.Context, p models.Product) (*models.Product, error) {
	f.created = append(f.created, "product:"+p.Slug)
	return &p, nil
}

func (f *fakeAPI) UpdateCase(_ context.Context, id int64, c models.Case) (*models.Case, error) {
	f.updated[id] = c.Slug
	return &c, nil
}

func TestContentStore_DispatchesOnDraftType(t *testing.T) {
	api := &fakeAPI{updated: map[int64]string{}}
	store := NewContentStore(api)

	require.NoError(t, store.Create(context.Background(), &ProductDraft{Item: models.Product{ID: 99, Slug: "p"}}))
	require.NoError(t, store.Update(context.Background(), 3, &CaseDraft{Item: models.Case{Slug: "c"}}))

	assert.Equal(t, []string{"product:p"}, api.created)
	assert.Equal(t, "c", api.updated[3])
}

func TestValidate_WhitespaceSlug(t *testing.T) {
	d := &ProductDraft{Item: models.Product{Slug: " \t ", Images: []string{"data:x"}}}
	assert.ErrorIs(t, Validate(d), ErrSlugRequired)
}

func plainTextAPI(t *testing.T, status int) *contentapi.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		_, _ = w.Write([]byte("created"))
	}))
	t.Cleanup(srv.Close)
	return contentapi.NewClient(contentapi.Config{BaseURL: srv.URL})
}

func TestEditor_SaveAcceptsPlainTextSuccess(t *testing.T) {
	refreshed := false
	e := NewEditor(NewContentStore(plainTextAPI(t, http.StatusCreated)), func(context.Context, Kind) error {
		refreshed = true
		return nil
	})

	require.NoError(t, e.Open(KindProducts))
	require.NoError(t, e.AttachImage("a.png", int64(len(pngHeader)), bytes.NewReader(pngHeader)))

	require.NoError(t, e.Save(context.Background()))
	assert.Equal(t, StateClosed, e.State())
	assert.Nil(t, e.Draft())
	assert.True(t, refreshed)
}

func TestContentStore_PlainTextSuccessOnUpdate(t *testing.T) {
	store := NewContentStore(plainTextAPI(t, http.StatusOK))
	assert.NoError(t, store.Update(context.Background(), 5, &SolutionDraft{Item: models.Solution{Slug: "s"}}))
}

func TestContentStore_ServerErrorStillFails(t *testing.T) {
	store := NewContentStore(plainTextAPI(t, http.StatusInternalServerError))
	err := store.Create(context.Background(), &CaseDraft{Item: models.Case{Slug: "c"}})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, contentapi.StatusCode(err))
}

func TestComputeArea(t *testing.T) {
	assert.Equal(t, 6.0, ComputeArea(3, 2))
}
