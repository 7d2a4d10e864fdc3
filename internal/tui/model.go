package tui

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"partpick/internal"
	"partpick/internal/catalog"
	"partpick/internal/clipboard"
	"partpick/internal/pipeline"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeQuantity
	modePath
)

type Options struct {
	Clipboard    clipboard.Writer
	SuggestLimit int
	Logger       *slog.Logger
}

// Model is the interactive picker. The catalog store is only touched from
// Update, so it needs no locking.
type Model struct {
	svc    *pipeline.ImportService
	store  *catalog.Store
	clip   clipboard.Writer
	keys   KeyMap
	logger *slog.Logger

	search textinput.Model
	input  textinput.Model

	mode         mode
	cursor       int
	qtyTarget    string
	importGen    int
	importing    bool
	suggestLimit int

	status    string
	statusErr bool

	width  int
	height int
}

func NewModel(svc *pipeline.ImportService, opts Options) Model {
	search := textinput.New()
	search.Placeholder = "검색 (띄어쓰기 무시)"
	search.Prompt = "/ "
	search.CharLimit = 100

	input := textinput.New()
	input.CharLimit = 512

	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.System{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return Model{
		svc:          svc,
		store:        svc.Store(),
		clip:         opts.Clipboard,
		keys:         DefaultKeyMap(),
		logger:       opts.Logger,
		search:       search,
		input:        input,
		suggestLimit: opts.SuggestLimit,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case importDecodedMsg:
		return m.handleImportDecoded(msg), nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeQuantity, modePath:
			return m.updateInput(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.store.Visible()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.NextCategory):
		m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		m.cycleCategory(-1)
	case key.Matches(msg, m.keys.Toggle):
		if item, ok := m.current(visible); ok {
			m.store.Toggle(item.ID)
		}
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Escape):
		m.search.SetValue("")
		m.store.SetQuery("")
		m.cursor = 0
	case key.Matches(msg, m.keys.Clear):
		m.store.ClearAll()
		m.setStatus("선택을 모두 지웠습니다", false)
	case key.Matches(msg, m.keys.Copy):
		m.copyOutput()
	case key.Matches(msg, m.keys.Open):
		m.mode = modePath
		m.input.Placeholder = "불러올 파일 경로 (.xlsx .xls .csv .tsv .html .eml .pdf)"
		m.input.Prompt = "파일: "
		m.input.SetValue(m.svc.LastImportPath())
		m.input.CursorEnd()
		return m, m.input.Focus()
	default:
		if r := msg.Runes; msg.Type == tea.KeyRunes && len(r) == 1 && r[0] >= '0' && r[0] <= '9' {
			item, ok := m.current(visible)
			if !ok {
				break
			}
			m.mode = modeQuantity
			m.qtyTarget = item.ID
			m.input.Placeholder = "수량"
			m.input.Prompt = item.Name + " × "
			m.input.SetValue(string(r))
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Escape):
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.store.SetQuery(m.search.Value())
	m.cursor = 0
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		value := m.input.Value()
		m.input.Blur()
		current := m.mode
		m.mode = modeBrowse
		if current == modeQuantity {
			m.store.SetQuantity(m.qtyTarget, value)
			return m, nil
		}
		return m.startImport(value)
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startImport(path string) (tea.Model, tea.Cmd) {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return m, nil
	}
	m.importGen++
	m.importing = true
	m.setStatus("불러오는 중: "+filepath.Base(path), false)
	return m, DecodeFileCmd(m.svc, m.importGen, path)
}

func (m Model) handleImportDecoded(msg importDecodedMsg) Model {
	if msg.gen != m.importGen {
		return m
	}
	m.importing = false

	if msg.err != nil {
		if msg.decoded.Filename != "" {
			m.svc.Fail(msg.decoded, msg.err)
		}
		m.setStatus(describeImportError(msg.err), true)
		return m
	}

	res, err := m.svc.Apply(msg.decoded)
	if err != nil {
		m.setStatus(describeImportError(err), true)
		return m
	}

	m.search.SetValue("")
	m.cursor = 0
	m.setStatus(importSummary(res), false)
	return m
}

func (m *Model) copyOutput() {
	output := m.store.Output()
	copied, err := clipboard.Copy(m.clip, output)
	switch {
	case err != nil:
		m.logger.Warn("clipboard write failed", "error", err)
		m.setStatus("복사에 실패했어요. 수동으로 복사해 주세요.", true)
	case !copied:
		m.setStatus("선택된 항목이 없습니다", false)
	default:
		m.setStatus("복사되었습니다!", false)
	}
	m.svc.RecordOutput(output, len(m.store.SelectedItems()), copied)
}

func (m *Model) cycleCategory(step int) {
	cats := m.store.Categories()
	pos := 0
	for i, c := range cats {
		if c == m.store.Category() {
			pos = i
			break
		}
	}
	pos = (pos + step + len(cats)) % len(cats)
	m.store.SetCategory(cats[pos])
	m.cursor = 0
}

func (m Model) current(visible []internal.Item) (internal.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(visible) {
		return internal.Item{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func describeImportError(err error) string {
	switch {
	case errors.Is(err, internal.ErrEmptyImport):
		return "가져올 데이터가 없습니다. 첫 열에 [카테고리] 이름 형식으로 부품명을 두세요."
	case errors.Is(err, internal.ErrDecodeFailure):
		return "파일을 읽는 중 문제가 발생했습니다. .xlsx/.csv/.html 형식을 사용해주세요."
	default:
		return "불러오기 실패: " + err.Error()
	}
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
