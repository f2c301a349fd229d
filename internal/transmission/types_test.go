package transmission

import "testing"

func TestPriority_RaiseLowerSaturate(t *testing.T) {
	if got := PriorityHigh.Raise(); got != PriorityHigh {
		t.Fatalf("High.Raise() = %v", got)
	}
	if got := PriorityLow.Lower(); got != PriorityLow {
		t.Fatalf("Low.Lower() = %v", got)
	}
	if got := PriorityNormal.Raise(); got != PriorityHigh {
		t.Fatalf("Normal.Raise() = %v", got)
	}
	if got := PriorityNormal.Lower(); got != PriorityLow {
		t.Fatalf("Normal.Lower() = %v", got)
	}
}

func TestTorrent_ManifestMergesStats(t *testing.T) {
	tor := Torrent{
		Files: []File{
			{Name: "a/b.txt", Length: 10, BytesCompleted: 5},
			{Name: "c.txt", Length: 0},
		},
		FileStats: []FileStat{{Wanted: false, Priority: PriorityLow}},
	}
	got := tor.Manifest()
	if len(got) != 2 {
		t.Fatalf("manifest len = %d, want 2", len(got))
	}
	if got[0].Wanted || got[0].Priority != PriorityLow || got[0].Done {
		t.Fatalf("first entry = %#v", got[0])
	}
	if got[1].Index != 1 || !got[1].Wanted || got[1].Done {
		t.Fatalf("second entry = %#v", got[1])
	}
}

func TestStatus_String(t *testing.T) {
	if StatusSeed.String() != "Seeding" {
		t.Fatalf("StatusSeed = %q", StatusSeed.String())
	}
	if Status(42).String() != "Unknown (42)" {
		t.Fatalf("unknown status = %q", Status(42).String())
	}
}
