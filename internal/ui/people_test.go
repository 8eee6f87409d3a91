package ui

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/holocron/internal/api"
	"github.com/thesavant42/holocron/internal/directory"
	"github.com/thesavant42/holocron/internal/models"
)

// newSWAPIServer serves two pages (count 15) plus the species and planets
// they reference. Setting failPeople makes every people request fail.
func newSWAPIServer(t *testing.T, failPeople *bool) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server

	mux.HandleFunc("/api/people/", func(w http.ResponseWriter, r *http.Request) {
		if failPeople != nil && *failPeople {
			http.Error(w, "down", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprintf(w, `{"count": 15, "next": "%[1]s/api/people/?page=2", "previous": null, "results": [
				{"name": "Luke Skywalker", "height": "172", "mass": "77", "birth_year": "19BBY",
				 "created": "2014-12-09T13:50:51.644000Z", "films": ["%[1]s/api/films/1/", "%[1]s/api/films/2/"],
				 "species": ["%[1]s/api/species/1/"], "homeworld": "%[1]s/api/planets/1/"},
				{"name": "R2-D2", "height": "96", "mass": "32", "birth_year": "33BBY",
				 "created": "2014-12-10T15:11:50.376000Z", "films": ["%[1]s/api/films/1/"],
				 "species": ["%[1]s/api/species/2/"], "homeworld": "%[1]s/api/planets/8/"}
			]}`, srv.URL)
		case "2":
			fmt.Fprintf(w, `{"count": 15, "next": null, "previous": "%[1]s/api/people/?page=1", "results": [
				{"name": "Chewbacca", "height": "228", "mass": "112", "birth_year": "200BBY",
				 "created": "2014-12-10T16:42:45.066000Z", "films": [],
				 "species": ["%[1]s/api/species/3/"], "homeworld": "%[1]s/api/planets/14/"}
			]}`, srv.URL)
		default:
			http.NotFound(w, r)
		}
	})
	mux.HandleFunc("/api/species/1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "Human"}`)
	})
	mux.HandleFunc("/api/species/2/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "Droid"}`)
	})
	mux.HandleFunc("/api/species/3/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "Wookie"}`)
	})
	mux.HandleFunc("/api/planets/1/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "Tatooine", "terrain": "desert", "climate": "arid", "population": "200000"}`)
	})

	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestModel(t *testing.T, failPeople *bool) PeopleModel {
	t.Helper()
	srv := newSWAPIServer(t, failPeople)
	ctrl := directory.NewController(api.NewClient(srv.URL + "/api"))
	return NewPeopleModel(context.Background(), ctrl, nil, 1, t.TempDir())
}

// drain feeds the message of each command back into Update until the model
// stops returning commands
func drain(t *testing.T, m PeopleModel, cmd tea.Cmd) PeopleModel {
	t.Helper()
	for cmd != nil {
		next, c := m.Update(cmd())
		m = next.(PeopleModel)
		cmd = c
	}
	return m
}

func send(t *testing.T, m PeopleModel, msg tea.Msg) (PeopleModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(PeopleModel), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m PeopleModel, s string) PeopleModel {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, keyRunes(string(r)))
	}
	return m
}

func loaded(t *testing.T, failPeople *bool) PeopleModel {
	t.Helper()
	m := newTestModel(t, failPeople)
	m, cmd := send(t, m, pageRequestMsg{page: 1})
	require.True(t, m.ctrl.Loading())
	return drain(t, m, cmd)
}

func TestPeopleModelLoadsAndEnriches(t *testing.T) {
	m := loaded(t, nil)

	assert.False(t, m.ctrl.Loading())
	assert.Equal(t, 2, m.ctrl.TotalPages())
	require.Len(t, m.visible, 2)
	assert.Equal(t, []models.Color{models.ColorHuman, models.ColorDroid}, m.colors)

	view := m.View()
	assert.Contains(t, view, "Luke Skywalker")
	assert.Contains(t, view, "R2-D2")
	assert.Contains(t, view, "page 1 of 2")
}

func TestPeopleModelShowsSpinnerWhileLoading(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := send(t, m, pageRequestMsg{page: 1})
	require.NotNil(t, cmd)

	assert.Contains(t, m.View(), "Loading page 1...")
}

func TestPeopleModelCursorStartsOnFirstRow(t *testing.T) {
	m := loaded(t, nil)
	assert.Equal(t, 0, m.table.Cursor())

	m, _ = send(t, m, keyRunes("/"))
	m = typeText(t, m, "zzz")
	require.Empty(t, m.visible)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Len(t, m.visible, 2)
	assert.Equal(t, 0, m.table.Cursor())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.ctrl.Selected())
	assert.Equal(t, "Luke Skywalker", m.ctrl.Selected().Name)
}

func TestPeopleModelSearchAsYouType(t *testing.T) {
	m := loaded(t, nil)

	m, _ = send(t, m, keyRunes("/"))
	require.Equal(t, peopleViewInput, m.viewMode)
	m = typeText(t, m, "sky")

	require.Len(t, m.visible, 1)
	assert.Equal(t, "Luke Skywalker", m.visible[0].Name)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, peopleViewTable, m.viewMode)
	assert.Equal(t, "sky", m.ctrl.Filter().Search)
}

func TestPeopleModelEscRestoresFilter(t *testing.T) {
	m := loaded(t, nil)

	m, _ = send(t, m, keyRunes("f"))
	m = typeText(t, m, "films/2")
	require.Len(t, m.visible, 1)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.ctrl.Filter().Film)
	assert.Len(t, m.visible, 2)
}

func TestPeopleModelClearFilters(t *testing.T) {
	m := loaded(t, nil)
	m.ctrl.SetFilter(models.FilterSpecies, "species/2")
	m.ctrl.SetSearchTerm("r2")
	m.refreshTable()
	require.Len(t, m.visible, 1)

	m, _ = send(t, m, keyRunes("c"))
	assert.True(t, m.ctrl.Filter().IsZero())
	assert.Len(t, m.visible, 2)
	assert.Equal(t, "Filters cleared", m.StatusMsg)
}

func TestPeopleModelDetailShowsHomeworld(t *testing.T) {
	m := loaded(t, nil)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, peopleViewDetail, m.viewMode)
	require.NotNil(t, m.ctrl.Selected())
	assert.Equal(t, "Luke Skywalker", m.ctrl.Selected().Name)
	assert.Contains(t, m.View(), "Resolving homeworld...")

	m = drain(t, m, cmd)
	require.NotNil(t, m.ctrl.Detail())

	view := m.View()
	assert.Contains(t, view, "1.72 meters")
	assert.Contains(t, view, "77 kg")
	assert.Contains(t, view, "09-12-2014")
	assert.Contains(t, view, "Tatooine")
	assert.Contains(t, view, "https://picsum.photos/200?random=Luke+Skywalker")

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, peopleViewTable, m.viewMode)
	assert.Nil(t, m.ctrl.Selected())
}

func TestPeopleModelDetailClosedBeforeHomeworldArrives(t *testing.T) {
	m := loaded(t, nil)

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg := cmd()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = send(t, m, msg)

	assert.Nil(t, m.ctrl.Selected())
	assert.Nil(t, m.ctrl.Detail())
}

func TestPeopleModelMissingHomeworldStopsSpinner(t *testing.T) {
	m := loaded(t, nil)
	m.table.SetCursor(1) // R2-D2's planet is not served

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(t, m, cmd)

	assert.Error(t, m.ctrl.DetailErr())
	assert.Nil(t, m.ctrl.Detail())
	view := m.View()
	assert.Contains(t, view, "R2-D2")
	assert.NotContains(t, view, "Resolving homeworld...")
}

func TestPeopleModelPaging(t *testing.T) {
	m := loaded(t, nil)

	m, cmd := send(t, m, keyRunes("n"))
	require.NotNil(t, cmd)
	assert.Equal(t, 2, m.ctrl.Page())
	m = drain(t, m, cmd)

	require.Len(t, m.visible, 1)
	assert.Equal(t, "Chewbacca", m.visible[0].Name)
	assert.Equal(t, []models.Color{models.ColorNeutral}, m.colors)

	// no page 3
	m, cmd = send(t, m, keyRunes("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, 2, m.ctrl.Page())

	m, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = drain(t, m, cmd)
	assert.Equal(t, 1, m.ctrl.Page())
	assert.Len(t, m.visible, 2)
}

func TestPeopleModelDigitOutOfRange(t *testing.T) {
	m := loaded(t, nil)

	m, cmd := send(t, m, keyRunes("9"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.ctrl.Page())
	assert.Equal(t, "No page 9 (pages 1-2)", m.StatusMsg)
}

func TestPeopleModelMissingPageStatus(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := send(t, m, pageRequestMsg{page: 3})
	m = drain(t, m, cmd)

	assert.Error(t, m.ctrl.Err())
	assert.Equal(t, "No page 3", m.StatusMsg)
}

func TestPeopleModelPageChangeClosesDetail(t *testing.T) {
	m := loaded(t, nil)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, m.ctrl.Selected())

	m, cmd := send(t, m, pageRequestMsg{page: 2})
	assert.Equal(t, peopleViewTable, m.viewMode)
	assert.Nil(t, m.ctrl.Selected())
	drain(t, m, cmd)
}

func TestPeopleModelStalePageDiscarded(t *testing.T) {
	m := loaded(t, nil)

	_, slow := send(t, m, pageRequestMsg{page: 2})
	m, fast := send(t, m, pageRequestMsg{page: 1})
	stale := slow()

	m = drain(t, m, fast)
	m, _ = send(t, m, stale)

	assert.Equal(t, 1, m.ctrl.Page())
	assert.Len(t, m.visible, 2)
}

func TestPeopleModelLoadError(t *testing.T) {
	fail := true
	m := loaded(t, &fail)

	assert.Error(t, m.ctrl.Err())
	view := m.View()
	assert.Contains(t, view, directory.LoadErrorMessage)
	assert.NotContains(t, view, "Luke")

	fail = false
	m, cmd := send(t, m, keyRunes("r"))
	m = drain(t, m, cmd)
	assert.NoError(t, m.ctrl.Err())
	assert.Len(t, m.visible, 2)
}

func TestPeopleModelExportMarkdown(t *testing.T) {
	m := loaded(t, nil)

	m, _ = send(t, m, keyRunes("e"))
	require.True(t, strings.HasPrefix(m.StatusMsg, "Exported 2 records to "), m.StatusMsg)

	path := strings.TrimPrefix(m.StatusMsg, "Exported 2 records to ")
	assert.Equal(t, m.exportDir, filepath.Dir(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| Luke Skywalker | `#FFD700` |")
	assert.Contains(t, string(data), "| R2-D2 | `#00CED1` |")
}

func TestPeopleModelQuit(t *testing.T) {
	m := loaded(t, nil)

	m, cmd := send(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.Quitting)
	assert.Equal(t, "", m.View())
}
