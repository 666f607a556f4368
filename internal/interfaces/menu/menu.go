package menu

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"greek-vocab-trainer/internal/domain/quiz"
	"greek-vocab-trainer/internal/domain/vocabulary"
)

// Dialogs is the blocking user interface the menu drives
type Dialogs interface {
	quiz.Prompter
	ShowError(ctx context.Context, title, body string)
}

// VocabularyService is the vocabulary store as seen by the menu
type VocabularyService interface {
	Load(ctx context.Context) error
	Len() int
	Find(term string) (vocabulary.Entry, bool)
	List(category vocabulary.Category) []vocabulary.Entry
	Categories() []vocabulary.Category
	Search(query string) []string
	Add(ctx context.Context, entry vocabulary.Entry) (bool, error)
	Update(ctx context.Context, oldTerm string, entry vocabulary.Entry) error
	Remove(ctx context.Context, terms []string) (int, error)
	ImportFile(ctx context.Context, path string) (int, error)
	ExportFile(path string) (string, error)
}

// QuizService starts quiz sessions
type QuizService interface {
	Start(ctx context.Context, category vocabulary.Category) (quiz.Session, error)
}

const (
	actionAdd    = "1"
	actionImport = "2"
	actionList   = "3"
	actionEdit   = "4"
	actionDelete = "5"
	actionExport = "6"
	actionQuiz   = "7"
	actionSearch = "8"
	actionExit   = "0"
)

const mainMenuText = "Greek Vocabulary Trainer\n\n" +
	"1. Add vocabulary\n" +
	"2. Import file\n" +
	"3. Vocabulary list\n" +
	"4. Edit word\n" +
	"5. Delete words\n" +
	"6. Export\n" +
	"7. Quiz me\n" +
	"8. Search\n" +
	"0. Exit"

const defaultExportPath = "vocab_export.json"

// Menu runs the main menu loop and its dialogs
type Menu struct {
	ui             Dialogs
	vocab          VocabularyService
	quiz           QuizService
	quizCategories []vocabulary.Category
	log            *zap.Logger
}

// New creates a new menu. quizCategories are offered as quiz filters after
// the "All Vocabulary" option.
func New(ui Dialogs, vocab VocabularyService, quizService QuizService, quizCategories []string, log *zap.Logger) *Menu {
	categories := make([]vocabulary.Category, 0, len(quizCategories))
	for _, c := range quizCategories {
		if parsed := vocabulary.ParseCategory(c); parsed != "" {
			categories = append(categories, parsed)
		}
	}

	return &Menu{
		ui:             ui,
		vocab:          vocab,
		quiz:           quizService,
		quizCategories: categories,
		log:            log,
	}
}

// Run loads the vocabulary and serves the main menu until the user exits or
// cancels it. A load failure is reported and the menu keeps running.
func (m *Menu) Run(ctx context.Context) error {
	if err := m.vocab.Load(ctx); err != nil {
		m.ui.ShowError(ctx, "Storage Error",
			fmt.Sprintf("Could not read the saved vocabulary: %v\n\nChanges are disabled until the file is fixed.", err))
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, ok := m.ui.AskText(ctx, mainMenuText, "")
		if !ok || choice == actionExit {
			m.log.Info("menu closed")
			return nil
		}

		m.dispatch(ctx, choice)
	}
}

func (m *Menu) dispatch(ctx context.Context, choice string) {
	switch choice {
	case actionAdd:
		m.addWord(ctx)
	case actionImport:
		m.importFile(ctx)
	case actionList:
		m.listWords(ctx)
	case actionEdit:
		m.editWord(ctx)
	case actionDelete:
		m.deleteWords(ctx)
	case actionExport:
		m.exportFile(ctx)
	case actionQuiz:
		m.startQuiz(ctx)
	case actionSearch:
		m.search(ctx, "")
	default:
		// unknown commands just redraw the menu
		if strings.HasPrefix(choice, "/") {
			return
		}
		m.search(ctx, choice)
	}
}

func (m *Menu) addWord(ctx context.Context) {
	term, ok := m.ui.AskText(ctx, "Enter the Greek word:", "")
	if !ok || strings.TrimSpace(term) == "" {
		return
	}

	initialMeaning, initialCategory := "", string(vocabulary.CategoryNoun)
	meaningPrompt, categoryPrompt := "Enter the English meaning:", "Select the part of speech:"

	if existing, found := m.vocab.Find(strings.TrimSpace(term)); found {
		if !m.ui.AskYesNo(ctx, fmt.Sprintf("The word '%s' already exists. Update it?", existing.Term)) {
			return
		}
		initialMeaning, initialCategory = existing.Meaning, string(existing.Category)
		meaningPrompt, categoryPrompt = "Enter the new English meaning:", "Enter the new part of speech:"
	}

	meaning, ok := m.ui.AskText(ctx, meaningPrompt, initialMeaning)
	if !ok {
		return
	}

	category, ok := m.ui.AskText(ctx, categoryPrompt+" ("+categoryChoices()+")", initialCategory)
	if !ok {
		return
	}

	entry, err := vocabulary.NewEntry(term, meaning, category)
	if err != nil {
		m.ui.ShowError(ctx, "Invalid Entry", "Please fill out all fields.")
		return
	}
	if !m.confirmCategory(ctx, entry.Category) {
		return
	}

	updated, err := m.vocab.Add(ctx, entry)
	if err != nil {
		m.ui.ShowError(ctx, "Save Failed", fmt.Sprintf("Error: %v", err))
		return
	}

	if updated {
		m.ui.ShowInfo(ctx, "Updated", fmt.Sprintf("Updated: %s", entry))
		return
	}
	m.ui.ShowInfo(ctx, "Success", fmt.Sprintf("Added: %s", entry))
}

func (m *Menu) importFile(ctx context.Context) {
	path, ok := m.ui.AskText(ctx, "Path of the .json or .csv file to import:", "")
	if !ok || path == "" {
		return
	}

	added, err := m.vocab.ImportFile(ctx, path)
	if err != nil {
		m.ui.ShowError(ctx, "Import Failed", fmt.Sprintf("Error: %v", err))
		return
	}

	m.ui.ShowInfo(ctx, "Import Complete", fmt.Sprintf("Imported %d new vocabulary entries.", added))
}

func (m *Menu) listWords(ctx context.Context) {
	if m.vocab.Len() == 0 {
		m.ui.ShowInfo(ctx, "Vocabulary List", "No words saved yet.")
		return
	}

	var filter vocabulary.Category
	if categories := m.vocab.Categories(); len(categories) > 0 {
		names := make([]string, 0, len(categories)+1)
		names = append(names, "All")
		for _, c := range categories {
			names = append(names, string(c))
		}

		choice, ok := m.ui.AskText(ctx, "Filter by part of speech: "+strings.Join(names, ", "), "All")
		if !ok {
			return
		}
		if !strings.EqualFold(strings.TrimSpace(choice), "all") {
			filter = vocabulary.ParseCategory(choice)
		}
	}

	entries := m.vocab.List(filter)
	if len(entries) == 0 {
		m.ui.ShowInfo(ctx, "Vocabulary List", fmt.Sprintf("No %ss in your vocab list.", filter))
		return
	}

	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, e))
	}

	m.ui.ShowInfo(ctx, fmt.Sprintf("Vocabulary List (%d)", len(entries)), strings.Join(lines, "\n"))
}

func (m *Menu) editWord(ctx context.Context) {
	term, ok := m.ui.AskText(ctx, "Which word do you want to edit?", "")
	if !ok || strings.TrimSpace(term) == "" {
		return
	}

	existing, found := m.vocab.Find(strings.TrimSpace(term))
	if !found {
		m.ui.ShowError(ctx, "Not Found", fmt.Sprintf("'%s' is not in your vocab list.", strings.TrimSpace(term)))
		return
	}

	newTerm, ok := m.ui.AskText(ctx, "Greek word:", existing.Term)
	if !ok {
		return
	}
	meaning, ok := m.ui.AskText(ctx, "English meaning:", existing.Meaning)
	if !ok {
		return
	}
	category, ok := m.ui.AskText(ctx, "Part of speech: ("+categoryChoices()+")", string(existing.Category))
	if !ok {
		return
	}

	entry, err := vocabulary.NewEntry(newTerm, meaning, category)
	if err != nil {
		m.ui.ShowError(ctx, "Invalid Entry", "Please fill out all fields.")
		return
	}
	if !m.confirmCategory(ctx, entry.Category) {
		return
	}

	if err := m.vocab.Update(ctx, existing.Term, entry); err != nil {
		if errors.Is(err, vocabulary.ErrDuplicateTerm) {
			m.ui.ShowError(ctx, "Edit Failed", fmt.Sprintf("'%s' already exists.", entry.Term))
			return
		}
		m.ui.ShowError(ctx, "Edit Failed", fmt.Sprintf("Error: %v", err))
		return
	}

	m.ui.ShowInfo(ctx, "Updated", fmt.Sprintf("Updated: %s", entry))
}

func (m *Menu) deleteWords(ctx context.Context) {
	input, ok := m.ui.AskText(ctx, "Words to delete (separate several with ';'):", "")
	if !ok {
		return
	}

	terms := splitTerms(input)
	if len(terms) == 0 {
		return
	}

	if !m.ui.AskYesNo(ctx, fmt.Sprintf("Delete %d selected word(s)?", len(terms))) {
		return
	}

	removed, err := m.vocab.Remove(ctx, terms)
	if err != nil {
		m.ui.ShowError(ctx, "Delete Failed", fmt.Sprintf("Error: %v", err))
		return
	}

	m.ui.ShowInfo(ctx, "Deleted", fmt.Sprintf("Deleted %d word(s).", removed))
}

func (m *Menu) exportFile(ctx context.Context) {
	path, ok := m.ui.AskText(ctx, "Export to (.json or .csv):", defaultExportPath)
	if !ok || path == "" {
		return
	}

	written, err := m.vocab.ExportFile(path)
	if err != nil {
		m.ui.ShowError(ctx, "Export Failed", fmt.Sprintf("Error: %v", err))
		return
	}

	m.ui.ShowInfo(ctx, "Export Successful", fmt.Sprintf("Vocabulary exported to:\n%s", written))
}

func (m *Menu) startQuiz(ctx context.Context) {
	if m.vocab.Len() == 0 {
		m.ui.ShowInfo(ctx, "Quiz", "No words available.")
		return
	}

	lines := []string{"Choose a quiz type:", "1. All Vocabulary"}
	for i, c := range m.quizCategories {
		lines = append(lines, fmt.Sprintf("%d. %ss only", i+2, c))
	}

	choice, ok := m.ui.AskText(ctx, strings.Join(lines, "\n"), "1")
	if !ok {
		return
	}

	category, valid := m.quizChoice(choice)
	if !valid {
		m.ui.ShowError(ctx, "Quiz", fmt.Sprintf("Unknown quiz type '%s'.", choice))
		return
	}

	session, err := m.quiz.Start(ctx, category)
	if err != nil {
		if errors.Is(err, quiz.ErrNothingToQuiz) {
			if category == "" {
				m.ui.ShowInfo(ctx, "Quiz", "No words available.")
			} else {
				m.ui.ShowInfo(ctx, "Quiz", fmt.Sprintf("No %ss in your vocab list.", category))
			}
			return
		}
		m.ui.ShowError(ctx, "Quiz", fmt.Sprintf("Error: %v", err))
		return
	}

	m.log.Info("quiz finished",
		zap.Stringer("session_id", session.ID),
		zap.Stringer("outcome", session.Outcome),
		zap.Int("rounds", len(session.Rounds)))
}

// quizChoice accepts a menu number or a category name
func (m *Menu) quizChoice(choice string) (vocabulary.Category, bool) {
	choice = strings.TrimSpace(choice)

	if n, err := strconv.Atoi(choice); err == nil {
		switch {
		case n == 1:
			return "", true
		case n >= 2 && n-2 < len(m.quizCategories):
			return m.quizCategories[n-2], true
		}
		return "", false
	}

	if strings.EqualFold(choice, "all") {
		return "", true
	}
	category := vocabulary.ParseCategory(choice)
	for _, c := range m.quizCategories {
		if c == category {
			return c, true
		}
	}
	return "", false
}

func (m *Menu) search(ctx context.Context, query string) {
	if query == "" {
		var ok bool
		query, ok = m.ui.AskText(ctx, "Search a word or meaning:", "")
		if !ok {
			return
		}
	}

	if strings.TrimSpace(query) == "" {
		return
	}

	results := m.vocab.Search(query)
	if len(results) == 0 {
		m.ui.ShowInfo(ctx, "Definition", "No match found.")
		return
	}

	m.ui.ShowInfo(ctx, "Definition", strings.Join(results, "\n"))
}

// confirmCategory lets the user keep a tag that is not one of the known
// parts of speech. An empty category needs no confirmation.
func (m *Menu) confirmCategory(ctx context.Context, category vocabulary.Category) bool {
	if category == "" || vocabulary.IsKnownCategory(category) {
		return true
	}
	return m.ui.AskYesNo(ctx, fmt.Sprintf("'%s' is not a standard part of speech. Use it anyway?", category))
}

func splitTerms(input string) []string {
	var terms []string
	for _, part := range strings.Split(input, ";") {
		if term := strings.TrimSpace(part); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func categoryChoices() string {
	names := make([]string, 0, len(vocabulary.Categories))
	for _, c := range vocabulary.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
