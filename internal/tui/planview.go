package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dhabedank/fitplan/internal/client"
	"github.com/dhabedank/fitplan/internal/core"
	"github.com/dhabedank/fitplan/internal/output"
)

// Regenerator fetches fresh plans. *client.Client satisfies it.
type Regenerator interface {
	RegenerateWorkoutPlan(ctx context.Context, profile core.UserProfile, customizations any) (*core.WorkoutPlan, error)
	RegenerateMealPlan(ctx context.Context, profile core.UserProfile, customizations any) (*core.MealPlan, error)
	RegeneratePlans(ctx context.Context, profile core.UserProfile) (*client.Plans, error)
}

// Tab selects which plan the view shows.
type Tab int

const (
	TabWorkout Tab = iota
	TabMeal
)

func (t Tab) String() string {
	if t == TabMeal {
		return "Meal Plan"
	}
	return "Workout Plan"
}

// PlanViewOptions configures a PlanView.
type PlanViewOptions struct {
	Profile   core.UserProfile
	Regen     Regenerator
	OutputDir string
	// Copy writes text to the clipboard. Defaults to clipboard.WriteAll.
	Copy func(string) error
}

type workoutRegeneratedMsg struct {
	plan *core.WorkoutPlan
	err  error
}

type mealRegeneratedMsg struct {
	plan *core.MealPlan
	err  error
}

type plansRegeneratedMsg struct {
	plans *client.Plans
	err   error
}

// PlanView shows the generated plans as tabbed, expandable day cards.
type PlanView struct {
	ctx     context.Context
	workout *core.WorkoutPlan
	meal    *core.MealPlan
	profile core.UserProfile
	regen   Regenerator
	outDir  string
	copyFn  func(string) error

	tab          Tab
	cursor       [2]int
	expanded     [2]map[int]bool
	showShopping bool
	pending      int
	status       string
	statusErr    bool

	spinner  spinner.Model
	viewport viewport.Model
}

// NewPlanView creates the view with day 0 of each plan expanded.
func NewPlanView(ctx context.Context, plans *client.Plans, opts PlanViewOptions) PlanView {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}

	m := PlanView{
		ctx:      ctx,
		profile:  opts.Profile,
		regen:    opts.Regen,
		outDir:   opts.OutputDir,
		copyFn:   opts.Copy,
		expanded: [2]map[int]bool{{0: true}, {0: true}},
		spinner:  s,
		viewport: viewport.New(80, 20),
	}
	if plans != nil {
		m.workout = plans.Workout
		m.meal = plans.Meal
	}
	m.syncContent()
	return m
}

// Workout returns the workout plan currently shown.
func (m PlanView) Workout() *core.WorkoutPlan { return m.workout }

// Meal returns the meal plan currently shown.
func (m PlanView) Meal() *core.MealPlan { return m.meal }

// Tab returns the active tab.
func (m PlanView) Tab() Tab { return m.tab }

// Expanded reports whether day i of the active plan is expanded.
func (m PlanView) Expanded(i int) bool { return m.expanded[m.tab][i] }

// ShoppingListVisible reports whether the shopping list panel is open.
func (m PlanView) ShoppingListVisible() bool { return m.showShopping }

// Status returns the last status line.
func (m PlanView) Status() string { return m.status }

// Init implements tea.Model.
func (m PlanView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m PlanView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-7, 3)
		m.syncContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "tab", "right", "l", "shift+tab", "left", "h":
			m.tab = 1 - m.tab
			m.viewport.GotoTop()

		case "up", "k":
			if m.cursor[m.tab] > 0 {
				m.cursor[m.tab]--
			}

		case "down", "j":
			if m.cursor[m.tab] < m.dayCount()-1 {
				m.cursor[m.tab]++
			}

		case "enter", " ", "space":
			if m.dayCount() > 0 {
				i := m.cursor[m.tab]
				m.expanded[m.tab][i] = !m.expanded[m.tab][i]
			}

		case "s":
			if m.tab == TabMeal {
				m.showShopping = !m.showShopping
			}

		case "e":
			m.export()

		case "c":
			m.copyToClipboard()

		case "r":
			return m.startRegenerate(m.tab == TabWorkout, m.tab == TabMeal)

		case "R":
			return m.startRegenerate(true, true)

		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		m.syncContent()
		return m, nil

	case workoutRegeneratedMsg:
		m.pending--
		if msg.err != nil {
			m.setError("Failed to regenerate workout plan: " + msg.err.Error())
		} else {
			m.workout = msg.plan
			m.resetDays(TabWorkout)
			m.setStatus("Workout plan regenerated")
		}
		m.syncContent()
		return m, nil

	case mealRegeneratedMsg:
		m.pending--
		if msg.err != nil {
			m.setError("Failed to regenerate meal plan: " + msg.err.Error())
		} else {
			m.meal = msg.plan
			m.resetDays(TabMeal)
			m.showShopping = false
			m.setStatus("Meal plan regenerated")
		}
		m.syncContent()
		return m, nil

	case plansRegeneratedMsg:
		m.pending--
		if msg.err != nil {
			m.setError("Failed to regenerate plans: " + msg.err.Error())
		} else {
			m.workout = msg.plans.Workout
			m.meal = msg.plans.Meal
			m.resetDays(TabWorkout)
			m.resetDays(TabMeal)
			m.showShopping = false
			m.setStatus("Plans regenerated")
		}
		m.syncContent()
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m PlanView) startRegenerate(workout, meal bool) (tea.Model, tea.Cmd) {
	if m.regen == nil {
		m.setError("Regeneration is not available")
		m.syncContent()
		return m, nil
	}

	var cmd tea.Cmd
	regen, ctx, profile := m.regen, m.ctx, m.profile
	switch {
	case workout && meal:
		cmd = func() tea.Msg {
			plans, err := regen.RegeneratePlans(ctx, profile)
			return plansRegeneratedMsg{plans: plans, err: err}
		}
		m.setStatus("Regenerating both plans...")
	case workout:
		cmd = func() tea.Msg {
			plan, err := regen.RegenerateWorkoutPlan(ctx, profile, nil)
			return workoutRegeneratedMsg{plan: plan, err: err}
		}
		m.setStatus("Regenerating workout plan...")
	default:
		cmd = func() tea.Msg {
			plan, err := regen.RegenerateMealPlan(ctx, profile, nil)
			return mealRegeneratedMsg{plan: plan, err: err}
		}
		m.setStatus("Regenerating meal plan...")
	}

	m.pending++
	m.syncContent()
	if m.pending == 1 {
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, cmd
}

func (m *PlanView) export() {
	var (
		path string
		err  error
	)
	switch {
	case m.tab == TabWorkout && m.workout != nil:
		path, err = output.WriteWorkout(m.outDir, output.TextExporter{}, m.workout)
	case m.tab == TabMeal && m.meal != nil:
		path, err = output.WriteMeal(m.outDir, output.TextExporter{}, m.meal)
	default:
		m.setError("Nothing to export")
		return
	}
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.setStatus("Exported to " + path)
}

func (m *PlanView) copyToClipboard() {
	var text string
	switch {
	case m.tab == TabWorkout && m.workout != nil:
		text = output.WorkoutText(m.workout)
	case m.tab == TabMeal && m.meal != nil:
		text = output.MealText(m.meal)
	default:
		m.setError("Nothing to copy")
		return
	}
	if err := m.copyFn(text); err != nil {
		m.setError("Failed to copy to clipboard: " + err.Error())
		return
	}
	m.setStatus(fmt.Sprintf("Copied %s to clipboard", strings.ToLower(m.tab.String())))
}

func (m *PlanView) resetDays(t Tab) {
	m.expanded[t] = map[int]bool{0: true}
	m.cursor[t] = 0
}

func (m *PlanView) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *PlanView) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m PlanView) dayCount() int {
	if m.tab == TabWorkout {
		if m.workout == nil {
			return 0
		}
		return len(m.workout.Days)
	}
	if m.meal == nil {
		return 0
	}
	return len(m.meal.Days)
}

// syncContent re-renders the active plan and keeps the cursor on screen.
func (m *PlanView) syncContent() {
	var content string
	var cursorLine int
	if m.tab == TabWorkout {
		content, cursorLine = m.renderWorkout()
	} else {
		content, cursorLine = m.renderMeal()
	}
	m.viewport.SetContent(content)

	if cursorLine < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorLine)
	} else if h := m.viewport.Height; h > 0 && cursorLine >= m.viewport.YOffset+h {
		m.viewport.SetYOffset(cursorLine - h + 1)
	}
}

func (m PlanView) dayHeader(b *strings.Builder, i int, label string) {
	arrow := "▸"
	if m.expanded[m.tab][i] {
		arrow = "▾"
	}
	line := fmt.Sprintf("%s %s", arrow, label)
	if i == m.cursor[m.tab] {
		b.WriteString(SelectedStyle.Render("> "+line) + "\n")
	} else {
		b.WriteString("  " + DayStyle.Render(line) + "\n")
	}
}

func (m PlanView) renderWorkout() (string, int) {
	if m.workout == nil {
		return UnselectedStyle.Render("No workout plan yet. Press r to generate one."), 0
	}
	p := m.workout

	var b strings.Builder
	cursorLine := 0
	b.WriteString(TitleStyle.Render(p.DisplayName()) + "\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n")
	}
	var meta []string
	if p.Duration != "" {
		meta = append(meta, "Duration: "+p.Duration.String())
	}
	if d := p.DisplayDifficulty(); d != "" {
		meta = append(meta, BadgeStyle.Render(d))
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " • ") + "\n")
	}
	b.WriteString("\n")

	for i, day := range p.Days {
		label := day.Day.String()
		if day.Focus != "" {
			label += " - " + day.Focus.String()
		}
		if i == m.cursor[TabWorkout] {
			cursorLine = strings.Count(b.String(), "\n")
		}
		m.dayHeader(&b, i, label)
		if !m.expanded[TabWorkout][i] {
			continue
		}

		if day.TotalDuration != "" {
			fmt.Fprintf(&b, "    %s\n", HelpStyle.Render(day.TotalDuration.String()))
		}
		if len(day.Warmup) > 0 {
			fmt.Fprintf(&b, "    %s %s\n", SubtitleStyle.Render("Warm-up:"), strings.Join(day.Warmup, ", "))
		}
		for _, ex := range day.Exercises {
			fmt.Fprintf(&b, "    • %s  %s × %s · rest %s\n", ExerciseStyle.Render(ex.Name.String()), ex.Sets, ex.Reps, ex.RestTime)
			if ex.Description != "" {
				fmt.Fprintf(&b, "      %s\n", ex.Description)
			}
			if len(ex.TargetMuscles) > 0 {
				fmt.Fprintf(&b, "      %s\n", HelpStyle.Render("Target: "+strings.Join(ex.TargetMuscles, ", ")))
			}
			if ex.Modifications.Easier != "" {
				fmt.Fprintf(&b, "      Easier: %s\n", ex.Modifications.Easier)
			}
			if ex.Modifications.Harder != "" {
				fmt.Fprintf(&b, "      Harder: %s\n", ex.Modifications.Harder)
			}
			if ex.Modifications.Note != "" {
				fmt.Fprintf(&b, "      Modifications: %s\n", ex.Modifications.Note)
			}
		}
		if len(day.Cooldown) > 0 {
			fmt.Fprintf(&b, "    %s %s\n", SubtitleStyle.Render("Cool-down:"), strings.Join(day.Cooldown, ", "))
		}
		b.WriteString("\n")
	}

	if len(p.Tips) > 0 {
		b.WriteString("\n" + SubtitleStyle.Render("Tips") + "\n")
		for _, t := range p.Tips {
			fmt.Fprintf(&b, "  • %s\n", t)
		}
	}
	return b.String(), cursorLine
}

func (m PlanView) renderMeal() (string, int) {
	if m.meal == nil {
		return UnselectedStyle.Render("No meal plan yet. Press r to generate one."), 0
	}
	p := m.meal

	var b strings.Builder
	cursorLine := 0
	b.WriteString(TitleStyle.Render(p.DisplayName()) + "\n")
	if p.Description != "" {
		b.WriteString(p.Description + "\n")
	}
	var meta []string
	if p.DietType != "" {
		meta = append(meta, BadgeStyle.Render(p.DietType))
	}
	if p.DailyCalories > 0 {
		meta = append(meta, NutritionStyle.Render(p.DailyCalories.String()+" kcal/day"))
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, " • ") + "\n")
	}
	b.WriteString("\n")

	for i, day := range p.Days {
		totals := day.Totals()
		label := day.Day.String()
		if totals.Calories > 0 {
			label += "  " + totals.Calories.String() + " kcal"
		}
		if i == m.cursor[TabMeal] {
			cursorLine = strings.Count(b.String(), "\n")
		}
		m.dayHeader(&b, i, label)
		if !m.expanded[TabMeal][i] {
			continue
		}

		for _, lm := range day.MainMeals() {
			writeMealLine(&b, lm.Label, *lm.Meal)
			writeMealDetails(&b, *lm.Meal)
		}
		for _, s := range day.AllSnacks() {
			writeMealLine(&b, "Snack", s)
		}
		fmt.Fprintf(&b, "    %s\n\n", NutritionStyle.Render(macroLine("Daily total", totals)))
	}

	if m.showShopping {
		b.WriteString(SubtitleStyle.Render("Shopping List") + "\n")
		if len(p.ShoppingList) == 0 {
			b.WriteString("  (empty)\n")
		}
		for _, item := range p.ShoppingList {
			fmt.Fprintf(&b, "  □ %s\n", item)
		}
		b.WriteString("\n")
	}

	if len(p.Tips) > 0 {
		b.WriteString(SubtitleStyle.Render("Tips") + "\n")
		for _, t := range p.Tips {
			fmt.Fprintf(&b, "  • %s\n", t)
		}
	}
	return b.String(), cursorLine
}

func writeMealLine(b *strings.Builder, label string, meal core.Meal) {
	fmt.Fprintf(b, "    %s %s\n", BadgeStyle.Render(label+":"), ExerciseStyle.Render(meal.Name.String()))
	if n := meal.Macros(); n.Calories > 0 {
		fmt.Fprintf(b, "      %s\n", NutritionStyle.Render(macroLine("", n)))
	}
	if len(meal.Ingredients) > 0 {
		fmt.Fprintf(b, "      %s\n", HelpStyle.Render(strings.Join(meal.Ingredients, ", ")))
	}
}

// writeMealDetails adds timing, numbered instructions and the recipe of a
// main meal.
func writeMealDetails(b *strings.Builder, meal core.Meal) {
	var timing []string
	if meal.PrepTime > 0 {
		timing = append(timing, "Prep: "+meal.PrepTime.String()+" min")
	}
	if meal.CookTime > 0 {
		timing = append(timing, "Cook: "+meal.CookTime.String()+" min")
	}
	if meal.Servings > 0 {
		timing = append(timing, "Servings: "+meal.Servings.String())
	}
	if len(timing) > 0 {
		fmt.Fprintf(b, "      %s\n", HelpStyle.Render(strings.Join(timing, " · ")))
	}
	for i, step := range meal.Instructions {
		fmt.Fprintf(b, "      %d. %s\n", i+1, step)
	}
	if len(meal.Recipe) > 0 {
		fmt.Fprintf(b, "      Recipe: %s\n", strings.Join(meal.Recipe, " "))
	}
}

func macroLine(prefix string, n core.Nutrition) string {
	s := fmt.Sprintf("%s kcal | P %sg C %sg F %sg", n.Calories, n.Protein, n.Carbs, n.Fat)
	if prefix != "" {
		s = prefix + ": " + s
	}
	return s
}

// View implements tea.Model.
func (m PlanView) View() string {
	var tabs []string
	for _, t := range []Tab{TabWorkout, TabMeal} {
		if t == m.tab {
			tabs = append(tabs, ActiveTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, InactiveTabStyle.Render(t.String()))
		}
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	status := ""
	switch {
	case m.pending > 0:
		status = m.spinner.View() + " " + m.status
	case m.statusErr:
		status = ErrorStyle.Render("✗ " + m.status)
	case m.status != "":
		status = SuccessStyle.Render("✓ " + m.status)
	}

	keys := "tab: switch • ↑/↓: day • enter: expand • e: export • c: copy • r: regenerate • R: both • q: quit"
	if m.tab == TabMeal {
		keys = "tab: switch • ↑/↓: day • enter: expand • s: shopping list • e: export • c: copy • r: regenerate • R: both • q: quit"
	}

	return header + "\n" + m.viewport.View() + "\n" + status + "\n" + HelpStyle.Render(keys)
}

// RunPlanView shows the plans until the user quits.
func RunPlanView(ctx context.Context, plans *client.Plans, opts PlanViewOptions) error {
	p := tea.NewProgram(NewPlanView(ctx, plans, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("plan view failed: %w", err)
	}
	return nil
}
