package application

import "testing"

func TestCodeSetPrefixes(t *testing.T) {
	codes := newCodeSet()
	if got := codes.next("Elektro"); got != "ELE" {
		t.Fatalf("expected ELE, got %q", got)
	}
	if got := codes.next("KNX"); got != "KNX" {
		t.Fatalf("expected KNX, got %q", got)
	}
}

func TestCodeSetCollisionFallback(t *testing.T) {
	codes := newCodeSet()
	first := codes.next("Elektro")
	second := codes.next("Elektrik")
	third := codes.next("Elektronik")

	if first != "ELE" {
		t.Fatalf("expected ELE, got %q", first)
	}
	if second != "EL1" {
		t.Fatalf("expected EL1, got %q", second)
	}
	if third != "EL2" {
		t.Fatalf("expected EL2, got %q", third)
	}
	if first == second || second == third || first == third {
		t.Fatalf("codes must be pairwise distinct: %q %q %q", first, second, third)
	}
}

func TestCodeSetShortNames(t *testing.T) {
	codes := newCodeSet()
	if got := codes.next("EG"); got != "EG" {
		t.Fatalf("expected EG, got %q", got)
	}
	if got := codes.next("eg"); got != "EG1" {
		t.Fatalf("expected EG1, got %q", got)
	}
}

func TestCodeSetUmlauts(t *testing.T) {
	codes := newCodeSet()
	if got := codes.next("Küche"); got != "KÜC" {
		t.Fatalf("expected KÜC, got %q", got)
	}
}
