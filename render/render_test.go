package render

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rangel3l/sem-colar-system/markup"
	"github.com/rangel3l/sem-colar-system/model"
)

// stubQR records payloads and hands back a pre-rendered PNG.
type stubQR struct {
	img      string
	payloads []string
}

func newStubQR(t *testing.T) *stubQR {
	t.Helper()
	im := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			im.Set(x, y, color.Black)
		}
	}
	path := filepath.Join(t.TempDir(), "qr.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, im); err != nil {
		t.Fatal(err)
	}
	return &stubQR{img: path}
}

func (s *stubQR) Encode(payload string, sizePx int) (string, error) {
	s.payloads = append(s.payloads, payload)
	return s.img, nil
}

func sampleQuestion(statement string, alts ...string) model.Question {
	q := model.NewQuestion(statement)
	q.Alternatives = alts
	return q
}

func TestWrapLineGreedyFill(t *testing.T) {
	// Width of exactly two 4-rune words plus the joining space.
	measure := func(s string) float64 { return float64(len([]rune(s))) }
	available := 9.0

	got := wrapLine("abcd efgh ijkl", available, measure)
	want := []string{"abcd efgh", "ijkl"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("wrapLine = %v, want %v", got, want)
	}
}

func TestWrapLineFitsWhole(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }
	got := wrapLine("curto", 100, measure)
	if !reflect.DeepEqual(got, []string{"curto"}) {
		t.Errorf("wrapLine = %v", got)
	}
}

func TestWrapLineLongSingleWord(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) }
	got := wrapLine("pneumoultramicroscopico", 5, measure)
	// An unbreakable word still lands on its own line.
	if len(got) != 1 || got[0] != "pneumoultramicroscopico" {
		t.Errorf("wrapLine = %v", got)
	}
}

func TestRenderWritesExamAndKey(t *testing.T) {
	dir := t.TempDir()
	qr := newStubQR(t)
	r, err := New(Options{OutputDir: dir, QR: qr, Keys: stubKeys{}})
	if err != nil {
		t.Fatal(err)
	}

	questions := []model.Question{
		sampleQuestion("Qual é a capital do Brasil?", "(A) Rio de Janeiro", "(B) Brasília", "(C) São Paulo"),
		sampleQuestion("Quanto é 2+2?", "(A) 3", "(B) 4"),
	}

	examPath, keyPath, err := r.Render(nil, questions, SegmentFlags{}, ExamMeta{ExamID: "p1", Version: "A"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	info, err := os.Stat(examPath)
	if err != nil {
		t.Fatalf("exam missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("exam file is empty")
	}
	if keyPath == "" {
		t.Error("expected key path")
	}
	if len(qr.payloads) == 0 {
		t.Fatal("no qr payloads recorded")
	}

	var payload struct {
		Exam    string `json:"exam"`
		Version string `json:"version"`
		Page    int    `json:"page"`
	}
	if err := json.Unmarshal([]byte(qr.payloads[0]), &payload); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if payload.Exam != "p1" || payload.Version != "A" || payload.Page != 1 {
		t.Errorf("payload = %+v", payload)
	}
}

type stubKeys struct{}

func (stubKeys) WriteKey(questions []model.Question, meta ExamMeta, outPath string) error {
	return os.WriteFile(outPath, []byte("key"), 0o644)
}

func TestRenderPaginatesLongExam(t *testing.T) {
	dir := t.TempDir()
	qr := newStubQR(t)
	r, err := New(Options{OutputDir: dir, QR: qr})
	if err != nil {
		t.Fatal(err)
	}

	var questions []model.Question
	long := strings.Repeat("palavra ", 40)
	for i := 0; i < 30; i++ {
		questions = append(questions, sampleQuestion(long, "(A) sim", "(B) não", "(C) talvez"))
	}

	if _, _, err := r.Render(nil, questions, SegmentFlags{}, ExamMeta{ExamID: "p2", Version: "B"}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// One payload per page break plus the final page.
	if len(qr.payloads) < 3 {
		t.Errorf("expected multiple pages, got %d qr stamps", len(qr.payloads))
	}
}

func TestRenderPreservedHeaderFallsBackOnFailure(t *testing.T) {
	dir := t.TempDir()
	qr := newStubQR(t)
	r, err := New(Options{OutputDir: dir, QR: qr})
	if err != nil {
		t.Fatal(err)
	}

	// Preservation requested but no content at all: the preserved pass
	// reports failure and the default header takes over.
	doc := &model.SourceDocument{PreserveHeader: true}
	questions := []model.Question{sampleQuestion("1. Pergunta?", "(A) sim", "(B) não")}

	examPath, _, err := r.Render(doc, questions, SegmentFlags{HasOwnNumbering: true}, ExamMeta{ExamID: "p3", Version: "A"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if _, err := os.Stat(examPath); err != nil {
		t.Errorf("exam missing: %v", err)
	}
}

func TestRenderPreservedHeaderWithOverrides(t *testing.T) {
	dir := t.TempDir()
	qr := newStubQR(t)
	r, err := New(Options{OutputDir: dir, QR: qr})
	if err != nil {
		t.Fatal(err)
	}

	doc := &model.SourceDocument{
		PreserveHeader: true,
		Header: model.HeaderContent{
			Kind: model.HeaderDocxParagraphs,
			Paragraphs: []model.HeaderParagraph{
				{
					Text: "Colégio Estadual",
					Runs: []model.TextSpan{{Text: "Colégio Estadual", Font: "Arial", Size: 14}},
				},
			},
		},
		Overrides: model.Overrides{
			Teacher:        "Maria",
			Subject:        "História",
			ClassLabel:     "3B",
			EvaluationType: "Bimestral",
		},
	}
	questions := []model.Question{sampleQuestion("1. Pergunta?", "(A) sim", "(B) não")}

	examPath, _, err := r.Render(doc, questions, SegmentFlags{HasOwnNumbering: true}, ExamMeta{ExamID: "p5", Version: "A"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	info, err := os.Stat(examPath)
	if err != nil {
		t.Fatalf("exam missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("exam file is empty")
	}
}

func TestRenderTableQuestion(t *testing.T) {
	dir := t.TempDir()
	qr := newStubQR(t)
	r, err := New(Options{OutputDir: dir, QR: qr})
	if err != nil {
		t.Fatal(err)
	}

	block := model.NewTextBlock(0, "Nome | Idade\nAna | 20")
	block.IsTable = true
	doc := &model.SourceDocument{
		Blocks: []*model.TextBlock{block},
		Tables: []*model.Table{{
			BlockID:      0,
			HasHeaderRow: true,
			Rows:         [][]string{{"Nome", "Idade"}, {"Ana", "20"}},
		}},
	}

	q := sampleQuestion("Nome | Idade\nAna | 20", "(A) sim", "(B) não")
	q.BlockID = 0

	examPath, _, err := r.Render(doc, []model.Question{q}, SegmentFlags{}, ExamMeta{ExamID: "p4", Version: "A"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if info, err := os.Stat(examPath); err != nil || info.Size() == 0 {
		t.Errorf("exam not written: %v", err)
	}
}

func TestSplitInlineTables(t *testing.T) {
	table := &model.Table{
		Rows:         [][]string{{"A", "B"}, {"1", "2"}},
		HasHeaderRow: true,
	}
	statement := "1. Analise:\n" + markup.BuildTable(table)

	prose, parsed := splitInlineTables(statement)
	if !strings.HasPrefix(prose, "1. Analise:") {
		t.Errorf("prose = %q", prose)
	}
	if len(parsed) != 1 {
		t.Fatalf("expected 1 inline table, got %d", len(parsed))
	}
	if parsed[0].RowCount() != 2 {
		t.Errorf("rows = %d", parsed[0].RowCount())
	}
}

func TestCoreFamily(t *testing.T) {
	tests := []struct {
		font string
		want string
	}{
		{"Arial-BoldMT", "Helvetica"},
		{"TimesNewRomanPSMT", "Times"},
		{"Courier New", "Courier"},
		{"", "Helvetica"},
	}
	for _, tt := range tests {
		if got := coreFamily(tt.font); got != tt.want {
			t.Errorf("coreFamily(%q) = %q, want %q", tt.font, got, tt.want)
		}
	}
}
