package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if len(c.Ads) != 10 {
		t.Fatalf("expected 10 ads, got %d", len(c.Ads))
	}
	first := c.Ads[0]
	if first.ID != "#001" || first.Color != "#FF6B6B" || first.Video != "videos/ad1.mp4" {
		t.Errorf("first ad = %+v", first)
	}
	if first.Metrics.CTR != 3.1 || first.Metrics.HookRate != 45 || first.Metrics.HoldRate != 60 {
		t.Errorf("first metrics = %+v", first.Metrics)
	}
	if last := c.Ads[9]; last.ID != "#010" || last.Metrics.CTR != 3.7 {
		t.Errorf("last ad = %+v", last)
	}
}

func TestDefs(t *testing.T) {
	defs := Default().Defs()
	if len(defs) != 10 {
		t.Fatalf("expected 10 defs, got %d", len(defs))
	}
	d := defs[4]
	if d.ID != "#005" || d.VideoRef != "videos/ad5.mp4" || d.Metrics.CTR != 5.2 {
		t.Errorf("def 4 = %+v", d)
	}
	// #1A535C
	if d.Color.R != 0x1a/255.0 || d.Color.G != 0x53/255.0 || d.Color.B != 0x5c/255.0 || d.Color.A != 1 {
		t.Errorf("def 4 color = %+v", d.Color)
	}
}

func TestLoadEmptyPathIsDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Ads) != 10 {
		t.Errorf("expected built-in catalog, got %d ads", len(c.Ads))
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ads.yaml")
	data := `
ads:
  - id: spring
    color: "#0f0"
    video: spring.mp4
    metrics: {ctr: 1.5, hook_rate: 30, hold_rate: 40}
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(c.Ads) != 1 || c.Ads[0].ID != "spring" || c.Ads[0].Metrics.HookRate != 30 {
		t.Errorf("catalog = %+v", c)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read catalog") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"not yaml", "ads: [", []string{"parse catalog"}},
		{"unknown field", "ads:\n  - id: a\n    colour: '#fff'\n", []string{"colour"}},
		{"empty", "ads: []\n", []string{"no ads"}},
		{
			"every problem reported",
			`
ads:
  - id: a
    color: "#fff"
  - id: a
    color: "#fff"
  - id: ""
    color: "purple"
    metrics: {ctr: -1, hook_rate: 120}
`,
			[]string{"duplicate id", "missing id", "purple", "ctr -1", "hook_rate 120"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error missing %q:\n%v", w, err)
				}
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatal(err)
	}
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("re-parse failed: %v", err)
	}
	if len(c.Ads) != 10 || c.Ads[8].Metrics.HoldRate != 72 {
		t.Errorf("round trip lost data: %+v", c.Ads[8])
	}
}
