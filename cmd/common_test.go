/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import "testing"

func TestFallbackString(t *testing.T) {
	// Unset flag defers to the configured database path.
	if got := fallbackString(false, "./data/xlifftran.db", "/srv/tm.db"); got != "/srv/tm.db" {
		t.Errorf("config value not applied: %q", got)
	}
	// Explicit flag wins, even when it matches the default.
	if got := fallbackString(true, "./data/xlifftran.db", "/srv/tm.db"); got != "./data/xlifftran.db" {
		t.Errorf("flag value not honored: %q", got)
	}
	// Explicit empty flag disables the store regardless of config.
	if got := fallbackString(true, "", "/srv/tm.db"); got != "" {
		t.Errorf("explicit empty flag overridden: %q", got)
	}
	// Explicit empty config disables it too.
	if got := fallbackString(false, "./data/xlifftran.db", ""); got != "" {
		t.Errorf("empty config value not applied: %q", got)
	}
}

func TestFallbackInt(t *testing.T) {
	if got := fallbackInt(false, 50, 200); got != 200 {
		t.Errorf("config value not applied: %d", got)
	}
	if got := fallbackInt(true, 25, 200); got != 25 {
		t.Errorf("flag value not honored: %d", got)
	}
	// Zero and negative config values cannot be a batch size.
	if got := fallbackInt(false, 50, 0); got != 50 {
		t.Errorf("zero config value applied: %d", got)
	}
	if got := fallbackInt(false, 50, -1); got != 50 {
		t.Errorf("negative config value applied: %d", got)
	}
}

func TestSplitLangs(t *testing.T) {
	got := splitLangs(" zh-CN, ja-JP ,,uk-UA ")
	want := []string{"zh-CN", "ja-JP", "uk-UA"}
	if len(got) != len(want) {
		t.Fatalf("splitLangs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitLangs = %v, want %v", got, want)
		}
	}
	if out := splitLangs(""); len(out) != 0 {
		t.Errorf("empty input produced %v", out)
	}
}
