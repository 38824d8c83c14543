package textdiff

import (
	"strings"
	"testing"
)

func TestDiffEqual(t *testing.T) {
	if got := Diff("a\nb\n", "a\nb\n", Options{Context: 3}); got != "" {
		t.Errorf("expected no diff, got %q", got)
	}
}

func TestDiff(t *testing.T) {
	from := "package p\n\nfunc a() {}\n\nfunc b() {}\n"
	to := "package p\n\nfunc a() {}\n\nfunc c() {}\n"
	got := Diff(from, to, Options{FromName: "p_codable.go", ToName: "generated", Context: 1})
	want := `--- p_codable.go
+++ generated
@@ -4,2 +4,2 @@
 
-func b() {}
+func c() {}
`
	if got != want {
		t.Errorf("Diff() =\n%s\nwant\n%s", got, want)
	}
}

func TestDiffHunks(t *testing.T) {
	var from, to []string
	for i := 0; i < 20; i++ {
		from = append(from, "line")
		to = append(to, "line")
	}
	from[2], to[2] = "old head", "new head"
	from[17], to[17] = "old tail", "new tail"
	got := Diff(strings.Join(from, "\n")+"\n", strings.Join(to, "\n")+"\n", Options{Context: 2})
	if n := strings.Count(got, "@@ -"); n != 2 {
		t.Errorf("expected 2 hunks, got %d:\n%s", n, got)
	}
	if !strings.Contains(got, "@@ -1,5 +1,5 @@\n line\n line\n-old head\n+new head\n line\n line\n") {
		t.Errorf("unexpected first hunk:\n%s", got)
	}

	merged := Diff(strings.Join(from, "\n")+"\n", strings.Join(to, "\n")+"\n", Options{Context: 10})
	if n := strings.Count(merged, "@@ -"); n != 1 {
		t.Errorf("expected overlapping hunks to merge, got %d:\n%s", n, merged)
	}
}

func TestDiffColor(t *testing.T) {
	got := Diff("a\n", "b\n", Options{Color: true})
	if !strings.Contains(got, "\x1b[31m-a") || !strings.Contains(got, "\x1b[32m+b") {
		t.Errorf("expected colored output, got %q", got)
	}
}
