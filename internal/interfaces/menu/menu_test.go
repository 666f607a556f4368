package menu

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"greek-vocab-trainer/internal/application/usecases"
	"greek-vocab-trainer/internal/domain/quiz"
	"greek-vocab-trainer/internal/domain/vocabulary"
	mock_vocabulary "greek-vocab-trainer/internal/domain/vocabulary/mock"
	"greek-vocab-trainer/internal/infrastructure/filesystem"
)

var (
	house = vocabulary.Entry{Term: "σπίτι", Meaning: "house, home", Category: vocabulary.CategoryNoun}
	eat   = vocabulary.Entry{Term: "τρώω", Meaning: "eat", Category: vocabulary.CategoryVerb}
	drink = vocabulary.Entry{Term: "πίνω", Meaning: "drink", Category: vocabulary.CategoryVerb}
)

type message struct {
	title string
	body  string
}

// scriptedDialogs answers prompts from a script. An empty answer returns
// the prompt's initial value and an exhausted script cancels.
type scriptedDialogs struct {
	answers  []string
	yesNo    []bool
	prompts  []string
	initials []string
	asked    []string
	infos    []message
	errors   []message
}

func (d *scriptedDialogs) AskText(_ context.Context, prompt, initial string) (string, bool) {
	d.prompts = append(d.prompts, prompt)
	d.initials = append(d.initials, initial)
	if len(d.answers) == 0 {
		return "", false
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	if answer == "" {
		return initial, true
	}
	return answer, true
}

func (d *scriptedDialogs) AskYesNo(_ context.Context, prompt string) bool {
	d.asked = append(d.asked, prompt)
	if len(d.yesNo) == 0 {
		return false
	}
	answer := d.yesNo[0]
	d.yesNo = d.yesNo[1:]
	return answer
}

func (d *scriptedDialogs) ShowInfo(_ context.Context, title, body string) {
	d.infos = append(d.infos, message{title: title, body: body})
}

func (d *scriptedDialogs) ShowError(_ context.Context, title, body string) {
	d.errors = append(d.errors, message{title: title, body: body})
}

type stubQuiz struct {
	categories []vocabulary.Category
	err        error
}

func (s *stubQuiz) Start(_ context.Context, category vocabulary.Category) (quiz.Session, error) {
	s.categories = append(s.categories, category)
	if s.err != nil {
		return quiz.Session{}, s.err
	}
	return quiz.Session{Outcome: quiz.OutcomeSuccess}, nil
}

func newMenu(t *testing.T, stored []vocabulary.Entry, dialogs *scriptedDialogs, setupMock func(*mock_vocabulary.MockRepository)) (*Menu, *stubQuiz) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mock_vocabulary.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(stored, nil)
	if setupMock != nil {
		setupMock(repo)
	}

	vocab := usecases.NewVocabularyUseCase(repo, filesystem.NewTransfer(), zap.NewNop())
	stub := &stubQuiz{}

	return New(dialogs, vocab, stub, []string{"noun", " Verb ", ""}, zap.NewNop()), stub
}

func TestMenu_RunLoadFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock_vocabulary.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(nil, fmt.Errorf("%w: bad json", vocabulary.ErrStorageRead))

	dialogs := &scriptedDialogs{answers: []string{"0"}}
	m := New(dialogs, usecases.NewVocabularyUseCase(repo, filesystem.NewTransfer(), zap.NewNop()), &stubQuiz{}, nil, zap.NewNop())

	require.NoError(t, m.Run(context.Background()))
	require.Len(t, dialogs.errors, 1)
	assert.Equal(t, "Storage Error", dialogs.errors[0].title)
	assert.Contains(t, dialogs.errors[0].body, "bad json")
	assert.Len(t, dialogs.prompts, 1)
}

func TestMenu_RunStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	dialogs := &scriptedDialogs{answers: []string{"3", "3"}}
	m, _ := newMenu(t, nil, dialogs, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Run(ctx), context.Canceled)
	assert.Empty(t, dialogs.prompts)
}

func TestMenu_AddWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stored     []vocabulary.Entry
		answers    []string
		yesNo      []bool
		setupMock  func(*mock_vocabulary.MockRepository)
		wantInfo   []message
		wantErrors []message
	}{
		{
			name:    "new word defaults to noun",
			answers: []string{"1", " θάλασσα ", "sea", ""},
			setupMock: func(repo *mock_vocabulary.MockRepository) {
				repo.EXPECT().Save(gomock.Any(), []vocabulary.Entry{
					{Term: "θάλασσα", Meaning: "sea", Category: vocabulary.CategoryNoun},
				}).Return(nil)
			},
			wantInfo: []message{{title: "Success", body: "Added: θάλασσα — sea [noun]"}},
		},
		{
			name:    "existing word is updated after confirmation",
			stored:  []vocabulary.Entry{house},
			answers: []string{"1", "σπίτι", "home", ""},
			yesNo:   []bool{true},
			setupMock: func(repo *mock_vocabulary.MockRepository) {
				repo.EXPECT().Save(gomock.Any(), []vocabulary.Entry{
					{Term: "σπίτι", Meaning: "home", Category: vocabulary.CategoryNoun},
				}).Return(nil)
			},
			wantInfo: []message{{title: "Updated", body: "Updated: σπίτι — home [noun]"}},
		},
		{
			name:    "existing word kept when update declined",
			stored:  []vocabulary.Entry{house},
			answers: []string{"1", "σπίτι"},
			yesNo:   []bool{false},
		},
		{
			name:       "blank meaning is rejected",
			answers:    []string{"1", "θάλασσα", "   ", "noun"},
			wantErrors: []message{{title: "Invalid Entry", body: "Please fill out all fields."}},
		},
		{
			name:    "save failure is reported",
			answers: []string{"1", "θάλασσα", "sea", "noun"},
			setupMock: func(repo *mock_vocabulary.MockRepository) {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(fmt.Errorf("%w: disk full", vocabulary.ErrStorageWrite))
			},
			wantErrors: []message{{title: "Save Failed", body: "Error: failed to save vocabulary: failed to write vocabulary storage: disk full"}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dialogs := &scriptedDialogs{answers: tt.answers, yesNo: tt.yesNo}
			m, _ := newMenu(t, append([]vocabulary.Entry(nil), tt.stored...), dialogs, tt.setupMock)

			require.NoError(t, m.Run(context.Background()))

			assert.Equal(t, tt.wantInfo, dialogs.infos)
			assert.Equal(t, tt.wantErrors, dialogs.errors)
		})
	}
}

func TestMenu_AddExistingPrefillsMeaning(t *testing.T) {
	t.Parallel()

	dialogs := &scriptedDialogs{answers: []string{"1", "σπίτι", "", ""}, yesNo: []bool{true}}
	m, _ := newMenu(t, []vocabulary.Entry{house}, dialogs, func(repo *mock_vocabulary.MockRepository) {
		repo.EXPECT().Save(gomock.Any(), []vocabulary.Entry{house}).Return(nil)
	})

	require.NoError(t, m.Run(context.Background()))

	assert.Equal(t, []string{"The word 'σπίτι' already exists. Update it?"}, dialogs.asked)
	// main menu, term, meaning, category, main menu again
	require.Len(t, dialogs.prompts, 5)
	assert.Equal(t, "Enter the new English meaning:", dialogs.prompts[2])
	assert.Equal(t, "house, home", dialogs.initials[2])
	assert.Equal(t, string(vocabulary.CategoryNoun), dialogs.initials[3])
	assert.Equal(t, []message{{title: "Updated", body: "Updated: σπίτι — house, home [noun]"}}, dialogs.infos)
}

func TestMenu_AddCustomCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		yesNo     []bool
		setupMock func(*mock_vocabulary.MockRepository)
		wantInfo  []message
	}{
		{
			name:  "kept after confirmation",
			yesNo: []bool{true},
			setupMock: func(repo *mock_vocabulary.MockRepository) {
				repo.EXPECT().Save(gomock.Any(), []vocabulary.Entry{
					{Term: "ωχ", Meaning: "oops", Category: "interjection"},
				}).Return(nil)
			},
			wantInfo: []message{{title: "Success", body: "Added: ωχ — oops [interjection]"}},
		},
		{
			name:  "dropped when declined",
			yesNo: []bool{false},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dialogs := &scriptedDialogs{answers: []string{"1", "ωχ", "oops", "Interjection"}, yesNo: tt.yesNo}
			m, _ := newMenu(t, nil, dialogs, tt.setupMock)

			require.NoError(t, m.Run(context.Background()))

			assert.Equal(t, []string{"'interjection' is not a standard part of speech. Use it anyway?"}, dialogs.asked)
			assert.Equal(t, tt.wantInfo, dialogs.infos)
		})
	}
}

func TestMenu_ListWords(t *testing.T) {
	t.Parallel()

	dialogs := &scriptedDialogs{answers: []string{"3", "verb", "3", "", "3", "adverb"}}
	m, _ := newMenu(t, []vocabulary.Entry{eat, house, drink}, dialogs, nil)

	require.NoError(t, m.Run(context.Background()))

	require.Len(t, dialogs.infos, 3)
	assert.Equal(t, message{
		title: "Vocabulary List (2)",
		body:  "1. πίνω — drink [verb]\n2. τρώω — eat [verb]",
	}, dialogs.infos[0])
	assert.Equal(t, "Vocabulary List (3)", dialogs.infos[1].title)
	assert.Equal(t, "No adverbs in your vocab list.", dialogs.infos[2].body)
	assert.Equal(t, "Filter by part of speech: All, noun, verb", dialogs.prompts[1])
}

func TestMenu_ListEmpty(t *testing.T) {
	t.Parallel()

	dialogs := &scriptedDialogs{answers: []string{"3"}}
	m, _ := newMenu(t, nil, dialogs, nil)

	require.NoError(t, m.Run(context.Background()))
	assert.Equal(t, []message{{title: "Vocabulary List", body: "No words saved yet."}}, dialogs.infos)
}

func TestMenu_EditWord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		answers    []string
		setupMock  func(*mock_vocabulary.MockRepository)
		wantInfo   []message
		wantErrors []message
	}{
		{
			name:    "fields replaced",
			answers: []string{"4", "τρώω", "", "to eat", ""},
			setupMock: func(repo *mock_vocabulary.MockRepository) {
				repo.EXPECT().Save(gomock.Any(), []vocabulary.Entry{
					house,
					{Term: "τρώω", Meaning: "to eat", Category: vocabulary.CategoryVerb},
				}).Return(nil)
			},
			wantInfo: []message{{title: "Updated", body: "Updated: τρώω — to eat [verb]"}},
		},
		{
			name:       "unknown word",
			answers:    []string{"4", "νερό"},
			wantErrors: []message{{title: "Not Found", body: "'νερό' is not in your vocab list."}},
		},
		{
			name:       "rename onto existing word",
			answers:    []string{"4", "τρώω", "σπίτι", "", ""},
			wantErrors: []message{{title: "Edit Failed", body: "'σπίτι' already exists."}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dialogs := &scriptedDialogs{answers: tt.answers}
			m, _ := newMenu(t, []vocabulary.Entry{house, eat}, dialogs, tt.setupMock)

			require.NoError(t, m.Run(context.Background()))

			assert.Equal(t, tt.wantInfo, dialogs.infos)
			assert.Equal(t, tt.wantErrors, dialogs.errors)
		})
	}
}

func TestMenu_DeleteWords(t *testing.T) {
	t.Parallel()

	dialogs := &scriptedDialogs{answers: []string{"5", "σπίτι; πίνω ;;άγνωστο"}, yesNo: []bool{true}}
	m, _ := newMenu(t, []vocabulary.Entry{house, eat, drink}, dialogs, func(repo *mock_vocabulary.MockRepository) {
		repo.EXPECT().Save(gomock.Any(), []vocabulary.Entry{eat}).Return(nil)
	})

	require.NoError(t, m.Run(context.Background()))

	assert.Equal(t, []string{"Delete 3 selected word(s)?"}, dialogs.asked)
	assert.Equal(t, []message{{title: "Deleted", body: "Deleted 2 word(s)."}}, dialogs.infos)
}

func TestMenu_DeleteDeclined(t *testing.T) {
	t.Parallel()

	dialogs := &scriptedDialogs{answers: []string{"5", "σπίτι"}, yesNo: []bool{false}}
	m, _ := newMenu(t, []vocabulary.Entry{house}, dialogs, nil)

	require.NoError(t, m.Run(context.Background()))
	assert.Empty(t, dialogs.infos)
}

func TestMenu_Search(t *testing.T) {
	t.Parallel()

	dialogs := &scriptedDialogs{answers: []string{"8", "HOME", "eat", "8", "θάλασσα", "/start"}}
	m, _ := newMenu(t, []vocabulary.Entry{house, eat}, dialogs, nil)

	require.NoError(t, m.Run(context.Background()))

	assert.Equal(t, []message{
		{title: "Definition", body: "house, home — σπίτι [noun]"},
		{title: "Definition", body: "eat — τρώω [verb]"},
		{title: "Definition", body: "No match found."},
	}, dialogs.infos)
}

func TestMenu_Quiz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		stored         []vocabulary.Entry
		answers        []string
		quizErr        error
		wantCategories []vocabulary.Category
		wantInfo       []message
		wantErrors     []message
	}{
		{
			name:           "all vocabulary by default",
			stored:         []vocabulary.Entry{house},
			answers:        []string{"7", ""},
			wantCategories: []vocabulary.Category{""},
		},
		{
			name:           "category by number",
			stored:         []vocabulary.Entry{house},
			answers:        []string{"7", "3"},
			wantCategories: []vocabulary.Category{vocabulary.CategoryVerb},
		},
		{
			name:           "category by name",
			stored:         []vocabulary.Entry{house},
			answers:        []string{"7", "Noun"},
			wantCategories: []vocabulary.Category{vocabulary.CategoryNoun},
		},
		{
			name:           "nothing in category",
			stored:         []vocabulary.Entry{house},
			answers:        []string{"7", "verb"},
			quizErr:        fmt.Errorf("%w: category %q", quiz.ErrNothingToQuiz, "verb"),
			wantCategories: []vocabulary.Category{vocabulary.CategoryVerb},
			wantInfo:       []message{{title: "Quiz", body: "No verbs in your vocab list."}},
		},
		{
			name:     "empty vocabulary",
			answers:  []string{"7"},
			wantInfo: []message{{title: "Quiz", body: "No words available."}},
		},
		{
			name:       "unknown quiz type",
			stored:     []vocabulary.Entry{house},
			answers:    []string{"7", "9"},
			wantErrors: []message{{title: "Quiz", body: "Unknown quiz type '9'."}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dialogs := &scriptedDialogs{answers: tt.answers}
			m, stub := newMenu(t, append([]vocabulary.Entry(nil), tt.stored...), dialogs, nil)
			stub.err = tt.quizErr

			require.NoError(t, m.Run(context.Background()))

			assert.Equal(t, tt.wantCategories, stub.categories)
			assert.Equal(t, tt.wantInfo, dialogs.infos)
			assert.Equal(t, tt.wantErrors, dialogs.errors)
		})
	}
}

func TestMenu_ExportImport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	exportPath := filepath.Join(dir, "words")
	importPath := filepath.Join(dir, "more.csv")
	require.NoError(t, os.WriteFile(importPath, []byte("term,meaning,category\nπίνω,drink,Verb\nσπίτι,dup,noun\n"), 0o644))

	dialogs := &scriptedDialogs{answers: []string{"6", exportPath, "2", importPath, "2", filepath.Join(dir, "words.txt")}}
	m, _ := newMenu(t, []vocabulary.Entry{house}, dialogs, func(repo *mock_vocabulary.MockRepository) {
		repo.EXPECT().Save(gomock.Any(), []vocabulary.Entry{house, drink}).Return(nil)
	})

	require.NoError(t, m.Run(context.Background()))

	assert.Equal(t, []message{
		{title: "Export Successful", body: "Vocabulary exported to:\n" + exportPath + ".json"},
		{title: "Import Complete", body: "Imported 1 new vocabulary entries."},
	}, dialogs.infos)
	require.Len(t, dialogs.errors, 1)
	assert.Equal(t, "Import Failed", dialogs.errors[0].title)
	assert.FileExists(t, exportPath+".json")
	assert.Equal(t, defaultExportPath, dialogs.initials[1])
}
