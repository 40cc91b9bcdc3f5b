package models

import "testing"

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func TestApplyPatchMergesOnlyPresentKeys(t *testing.T) {
	old := *NewSettings()
	old.DiscordRPC = true
	old.MinimiseToTray = true
	old.ZoomLevel = 2

	merged := ApplyPatch(old, SettingsPatch{DiscordRPC: boolPtr(false)})

	if merged.DiscordRPC {
		t.Error("patched key discordRPC should be false")
	}
	if !merged.MinimiseToTray {
		t.Error("untouched key minimiseToTray should be preserved")
	}
	if merged.ZoomLevel != 2 {
		t.Errorf("untouched key zoomLevel = %d, want 2", merged.ZoomLevel)
	}
	if merged.InstallID != old.InstallID {
		t.Error("installID must never change through a patch")
	}
}

func TestApplyPatchLaterWritesWin(t *testing.T) {
	old := *NewSettings()

	first := ApplyPatch(old, SettingsPatch{DiscordRPC: boolPtr(true)})
	second := ApplyPatch(first, SettingsPatch{DiscordRPC: boolPtr(false)})

	if second.DiscordRPC {
		t.Error("later write for discordRPC should win, want false")
	}
}

func TestApplyPatchEmptyPatchIsIdentity(t *testing.T) {
	old := *NewSettings()
	old.DevURL = "http://localhost:9999"

	merged := ApplyPatch(old, SettingsPatch{})

	if merged != old {
		t.Errorf("empty patch changed settings: %+v != %+v", merged, old)
	}
}

func TestApplyPatchAllFields(t *testing.T) {
	old := *NewSettings()
	zoom := 3
	merged := ApplyPatch(old, SettingsPatch{
		Frame:          boolPtr(false),
		MinimiseToTray: boolPtr(false),
		DiscordRPC:     boolPtr(false),
		StartMinimised: boolPtr(true),
		AutoUpdate:     boolPtr(false),
		AutoStart:      boolPtr(true),
		Telemetry:      boolPtr(true),
		ZoomLevel:      &zoom,
		DevURL:         strPtr("http://localhost:3000"),
	})

	if merged.Frame || merged.MinimiseToTray || merged.DiscordRPC || merged.AutoUpdate {
		t.Errorf("bool fields not all patched: %+v", merged)
	}
	if !merged.StartMinimised || !merged.AutoStart || !merged.Telemetry {
		t.Errorf("bool fields not all patched: %+v", merged)
	}
	if merged.ZoomLevel != 3 {
		t.Errorf("zoomLevel = %d, want 3", merged.ZoomLevel)
	}
	if merged.DevURL != "http://localhost:3000" {
		t.Errorf("devURL = %q", merged.DevURL)
	}
}
