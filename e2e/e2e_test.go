package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ayusman/pinchslice/internal/app"
	"github.com/ayusman/pinchslice/internal/config"
	"github.com/ayusman/pinchslice/internal/detector"
	"github.com/ayusman/pinchslice/internal/render"
	"github.com/ayusman/pinchslice/internal/server"
	"github.com/ayusman/pinchslice/internal/store"
)

// storeRecording writes one frame per element of frames.
func storeRecording(t *testing.T, s *store.Store, name string, frames [][]detector.HandLandmarks) {
	t.Helper()
	rec := &store.Recording{Name: name, Width: 320, Height: 240}
	if err := s.Recordings().Create(rec); err != nil {
		t.Fatalf("Create(%s) error = %v", name, err)
	}
	for i, hands := range frames {
		data, err := json.Marshal(hands)
		if err != nil {
			t.Fatalf("marshal frame %d: %v", i, err)
		}
		if err := s.Recordings().AppendFrame(rec.ID, int64(i), data); err != nil {
			t.Fatalf("AppendFrame(%d) error = %v", i, err)
		}
	}
}

func replay(t *testing.T, dbPath, name string) *app.App {
	t.Helper()
	cfg := config.New()
	cfg.Mode = config.ModeGame
	cfg.Audio.Enabled = false
	cfg.UI.Preview = false
	cfg.Game.Seed = 1
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Record.DB = dbPath
	cfg.Record.Replay = name

	surface := render.NewHeadless(0, 0)
	t.Cleanup(func() { surface.Close() })

	a, err := app.New(cfg, nil, app.Deps{Surface: surface})
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })

	if err := a.Driver().Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return a
}

func counter(t *testing.T, a *app.App, name string) float64 {
	t.Helper()
	families, err := a.Metrics().Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	return 0
}

func TestE2E_ReplayedSessions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	dbPath := filepath.Join(t.TempDir(), "recordings.db")
	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}

	// Nobody in front of the camera: every fruit falls.
	storeRecording(t, s, "empty", make([][]detector.HandLandmarks, 400))

	// A hand shows up, pinches once and holds still with an open palm.
	pause := make([][]detector.HandLandmarks, 0, 200)
	for i := 0; i < 10; i++ {
		pause = append(pause, nil)
	}
	pause = append(pause, []detector.HandLandmarks{detector.PinchingAt(0.5, 0.5)})
	for len(pause) < 200 {
		pause = append(pause, []detector.HandLandmarks{detector.PointingAt(0.5, 0.5)})
	}
	storeRecording(t, s, "pause", pause)
	s.Close()

	t.Run("unattended game runs out of lives", func(t *testing.T) {
		a := replay(t, dbPath, "empty")
		st := a.Driver().Status()

		if a.Driver().Ticks() != 400 {
			t.Errorf("ticks = %d, want 400", a.Driver().Ticks())
		}
		if st.Phase != "game_over" || st.Lives != 0 || st.Score != 0 {
			t.Errorf("status = %+v, want game over with 0 lives and no score", st)
		}
		if missed := counter(t, a, "pinchslice_fruits_missed_total"); missed != 3 {
			t.Errorf("fruits missed = %v, want 3", missed)
		}
		if hands := counter(t, a, "pinchslice_hand_ticks_total"); hands != 0 {
			t.Errorf("hand ticks = %v, want 0", hands)
		}
	})

	t.Run("pinch pauses before the first throw", func(t *testing.T) {
		a := replay(t, dbPath, "pause")
		st := a.Driver().Status()

		if st.Phase != "paused" || st.Lives != 3 || st.Fruits != 0 {
			t.Errorf("status = %+v, want paused with 3 lives and no fruit", st)
		}
		if pinches := counter(t, a, "pinchslice_pinches_total"); pinches != 1 {
			t.Errorf("pinches = %v, want 1", pinches)
		}
		if spawned := counter(t, a, "pinchslice_fruits_spawned_total"); spawned != 0 {
			t.Errorf("fruits spawned = %v, want 0", spawned)
		}

		t.Run("status server reports the session", func(t *testing.T) {
			ts := httptest.NewServer(a.Server())
			defer ts.Close()

			resp, err := ts.Client().Get(ts.URL + "/api/state")
			if err != nil {
				t.Fatalf("GET /api/state error = %v", err)
			}
			defer resp.Body.Close()

			var got server.Status
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != st {
				t.Errorf("GET /api/state = %+v, want %+v", got, st)
			}

			list, err := ts.Client().Get(ts.URL + "/api/recordings")
			if err != nil {
				t.Fatalf("GET /api/recordings error = %v", err)
			}
			defer list.Body.Close()
			if list.StatusCode != http.StatusOK {
				t.Fatalf("GET /api/recordings status = %d", list.StatusCode)
			}

			var listed struct {
				Recordings []struct {
					Name   string `json:"name"`
					Frames int    `json:"frames"`
				} `json:"recordings"`
			}
			if err := json.NewDecoder(list.Body).Decode(&listed); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(listed.Recordings) != 2 || listed.Recordings[0].Name != "empty" || listed.Recordings[1].Frames != 200 {
				t.Errorf("recordings = %+v", listed.Recordings)
			}
		})
	})
}
