package table

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := os.WriteFile(path, []byte(contents), 0666); err != nil {
		t.Fatalf("writing fixture: %s", err)
	}
	return path
}

func TestRenderAlignsAndUppercases(t *testing.T) {
	path := writeFixture(t, "NAME,CODE\n\"Cabo Verde\",CPV\n")
	tab, err := ReadFile(path, ',')
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}

	// NAME column: max field is "Cabo Verde" (10 runes), so 12
	// wide; CODE column: "CODE" (4 runes), so 6 wide.
	want := "NAME         CODE  \n" +
		"------------ ------\n" +
		"Cabo Verde   CPV   \n"
	if got := tab.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderLowercaseHeaderGetsUppercased(t *testing.T) {
	path := writeFixture(t, "name,code\nAngola,AGO\n")
	tab, err := ReadFile(path, ',')
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	got := tab.Render()
	if !strings.HasPrefix(got, "NAME     CODE  \n") {
		t.Errorf("header not uppercased: %q", got)
	}
	if !strings.Contains(got, "Angola   AGO   \n") {
		t.Errorf("data row should keep its case: %q", got)
	}
}

func TestRenderSeparatorMatchesPadding(t *testing.T) {
	path := writeFixture(t, "NAME,CODE\n\"Cabo Verde\",CPV\nAngola,AGO\n")
	tab, err := ReadFile(path, ',')
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	lines := strings.Split(strings.TrimSuffix(tab.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), lines)
	}
	for _, sep := range strings.Split(lines[1], " ") {
		if sep != strings.Repeat("-", len(sep)) {
			t.Errorf("separator segment %q is not all dashes", sep)
		}
	}
	for i, line := range lines {
		if len([]rune(line)) != len([]rune(lines[0])) {
			t.Errorf("line %d has width %d, want %d", i, len([]rune(line)), len([]rune(lines[0])))
		}
	}
}

func TestRenderRaggedRows(t *testing.T) {
	path := writeFixture(t, "A,B,C,D,E\n1,2,3,4,5\nx,y\n")
	tab, err := ReadFile(path, ',')
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	lines := strings.Split(strings.TrimSuffix(tab.Render(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	// Short rows are padded with empty fields to the full width.
	for i, line := range lines {
		if len([]rune(line)) != len([]rune(lines[0])) {
			t.Errorf("line %d not padded to table width: %q", i, line)
		}
	}
	if !strings.HasPrefix(lines[3], "x   y ") {
		t.Errorf("short row rendered wrong: %q", lines[3])
	}
}

func TestRenderWiderRowThanHeader(t *testing.T) {
	path := writeFixture(t, "A,B\n1,2,3\n")
	tab, err := ReadFile(path, ',')
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	lines := strings.Split(strings.TrimSuffix(tab.Render(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if len([]rune(lines[0])) != len([]rune(lines[2])) {
		t.Errorf("header not padded out to the widest row: %q vs %q", lines[0], lines[2])
	}
}

func TestReadFileStripsQuotesAndCarriageReturns(t *testing.T) {
	path := writeFixture(t, "NAME,CODE\r\n\"Cabo Verde\",CPV\r\n")
	tab, err := ReadFile(path, ',')
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	got := tab.Render()
	if strings.ContainsAny(got, "\"\r") {
		t.Errorf("render should contain neither quotes nor CRs: %q", got)
	}
	if !strings.Contains(got, "Cabo Verde") {
		t.Errorf("quoted field lost: %q", got)
	}
}

func TestReadFileDelimiterOverride(t *testing.T) {
	path := writeFixture(t, "NAME;CODE\nAngola;AGO\n")
	tab, err := ReadFile(path, ';')
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	if !strings.HasPrefix(tab.Render(), "NAME     CODE  \n") {
		t.Errorf("semicolon delimiter not honored: %q", tab.Render())
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	path := writeFixture(t, "NAME,CODE\nAngola,AGO\n")
	tab, err := ReadFile(path, ',')
	if err != nil {
		t.Fatalf("ReadFile: %s", err)
	}
	first := tab.Render()
	second := tab.Render()
	if first != second {
		t.Errorf("Render is not stable: %q then %q", first, second)
	}
}

func TestNewRejectsDuplicateHeaders(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("New with duplicate headers should panic")
		}
	}()
	New("name", "code", "name")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"), ',')
	if !errors.Is(err, ErrInputUnavailable) {
		t.Errorf("expected ErrInputUnavailable, got %v", err)
	}
}

func TestReadFileEmpty(t *testing.T) {
	path := writeFixture(t, "")
	_, err := ReadFile(path, ',')
	if !errors.Is(err, ErrInputUnavailable) {
		t.Errorf("expected ErrInputUnavailable, got %v", err)
	}
}

func TestReadFileDirectory(t *testing.T) {
	_, err := ReadFile(t.TempDir(), ',')
	if !errors.Is(err, ErrInputUnavailable) {
		t.Errorf("expected ErrInputUnavailable, got %v", err)
	}
}
