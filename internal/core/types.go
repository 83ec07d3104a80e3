package core

import (
	"fmt"
	"strings"
	"time"
)

// FitnessLevel is the user's training experience.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// FitnessGoal is what the user is training for.
type FitnessGoal string

const (
	GoalWeightLoss FitnessGoal = "weight-loss"
	GoalMuscleGain FitnessGoal = "muscle-gain"
	GoalEndurance  FitnessGoal = "endurance"
	GoalStrength   FitnessGoal = "strength"
)

// DietPreference is the eating style used for meal plans.
type DietPreference string

const (
	DietNonVegetarian DietPreference = "non-vegetarian"
	DietVegetarian    DietPreference = "vegetarian"
	DietVegan         DietPreference = "vegan"
	DietKeto          DietPreference = "keto"
	DietPaleo         DietPreference = "paleo"
	DietMediterranean DietPreference = "mediterranean"
)

// PlanKind distinguishes the two plan families.
type PlanKind string

const (
	KindWorkout PlanKind = "workout"
	KindMeal    PlanKind = "meal"
)

// ParsePlanKind accepts "workout" or "meal" in any case.
func ParsePlanKind(s string) (PlanKind, error) {
	switch PlanKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindWorkout:
		return KindWorkout, nil
	case KindMeal:
		return KindMeal, nil
	}
	return "", fmt.Errorf("unknown plan type: %q", s)
}

// UserProfile is what the wizard collects and what prompts are built from.
// It is read-only once a generation request is in flight.
type UserProfile struct {
	FitnessLevel       FitnessLevel   `json:"fitnessLevel"`
	FitnessGoal        FitnessGoal    `json:"fitnessGoal"`
	Equipment          []string       `json:"equipment"`
	AvailableEquipment []string       `json:"availableEquipment,omitempty"` // alternate spelling sent by older clients
	DietPreference     DietPreference `json:"dietPreference"`
	WorkoutDuration    Minutes        `json:"workoutDuration"`
	CalorieGoal        *int           `json:"calorieGoal,omitempty"`
	Restrictions       []string       `json:"restrictions,omitempty"`
}

// DefaultProfile returns the wizard's starting selections.
func DefaultProfile() UserProfile {
	return UserProfile{
		FitnessLevel:    LevelBeginner,
		FitnessGoal:     GoalWeightLoss,
		Equipment:       []string{},
		DietPreference:  DietNonVegetarian,
		WorkoutDuration: 45,
	}
}

// Normalize folds the underscored enum spellings into the hyphenated ones
// and merges availableEquipment into equipment.
func (p *UserProfile) Normalize() {
	p.FitnessLevel = FitnessLevel(normalizeEnum(string(p.FitnessLevel)))
	p.FitnessGoal = FitnessGoal(normalizeEnum(string(p.FitnessGoal)))
	p.DietPreference = DietPreference(normalizeEnum(string(p.DietPreference)))

	if len(p.AvailableEquipment) > 0 {
		seen := make(map[string]bool, len(p.Equipment))
		for _, e := range p.Equipment {
			seen[e] = true
		}
		for _, e := range p.AvailableEquipment {
			if !seen[e] {
				p.Equipment = append(p.Equipment, e)
				seen[e] = true
			}
		}
		p.AvailableEquipment = nil
	}
}

func normalizeEnum(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
}

// Required field lists, in the order they are reported.
var (
	WorkoutRequiredFields = []string{"fitnessLevel", "fitnessGoal", "workoutDuration"}
	MealRequiredFields    = []string{"fitnessGoal", "dietPreference"}
)

// ValidateFor checks that the fields a plan kind needs are present.
// The message is static: it names every required field, not just the
// missing ones.
func (p UserProfile) ValidateFor(kind PlanKind) error {
	switch kind {
	case KindWorkout:
		if p.FitnessLevel == "" || p.FitnessGoal == "" || p.WorkoutDuration <= 0 {
			return &ValidationError{Fields: WorkoutRequiredFields}
		}
	case KindMeal:
		if p.FitnessGoal == "" || p.DietPreference == "" {
			return &ValidationError{Fields: MealRequiredFields}
		}
	}
	return nil
}

// ValidationError represents a request missing required profile fields.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// Exercise is a single movement within a workout day.
type Exercise struct {
	Name          FlexString    `json:"name"`
	Sets          FlexString    `json:"sets"`
	Reps          FlexString    `json:"reps"`
	RestTime      FlexString    `json:"restTime"`
	Description   FlexString    `json:"description"`
	TargetMuscles StringList    `json:"targetMuscles,omitempty"`
	Difficulty    FlexString    `json:"difficulty,omitempty"`
	Modifications Modifications `json:"modifications,omitzero"`
}

// WorkoutDay is one day of a workout plan.
type WorkoutDay struct {
	Day           FlexString `json:"day"`
	Focus         FlexString `json:"focus"`
	Exercises     []Exercise `json:"exercises"`
	Warmup        StringList `json:"warmup,omitempty"`
	Cooldown      StringList `json:"cooldown,omitempty"`
	TotalDuration FlexString `json:"totalDuration,omitempty"`
}

// WorkoutPlan is the model's workout reply plus the server's id and
// timestamp. Name/Title and Difficulty/Level carry the two spellings the
// model may use.
type WorkoutPlan struct {
	ID          string       `json:"id"`
	Name        string       `json:"name,omitempty"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Duration    FlexString   `json:"duration,omitempty"`
	Difficulty  string       `json:"difficulty,omitempty"`
	Level       string       `json:"level,omitempty"`
	Days        []WorkoutDay `json:"days"`
	Tips        StringList   `json:"tips,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// DisplayName returns the plan's name under either spelling.
func (p WorkoutPlan) DisplayName() string {
	return firstNonEmpty(p.Name, p.Title, "Workout Plan")
}

// DisplayDifficulty returns the difficulty under either spelling.
func (p WorkoutPlan) DisplayDifficulty() string {
	return firstNonEmpty(p.Difficulty, p.Level)
}

// Nutrition holds the macro breakdown of a meal or a day.
type Nutrition struct {
	Calories Number `json:"calories"`
	Protein  Number `json:"protein"`
	Carbs    Number `json:"carbs"`
	Fat      Number `json:"fat"`
	Fiber    Number `json:"fiber,omitempty"`
}

// Add returns the sum of two breakdowns.
func (n Nutrition) Add(o Nutrition) Nutrition {
	return Nutrition{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
		Fiber:    n.Fiber + o.Fiber,
	}
}

// Meal is one meal or snack. The rich shape nests macros under Nutrition;
// the flat shape puts them on the meal and describes it with Recipe.
type Meal struct {
	Name         FlexString `json:"name"`
	Ingredients  StringList `json:"ingredients,omitempty"`
	Instructions StringList `json:"instructions,omitempty"`
	Recipe       StringList `json:"recipe,omitempty"`
	Nutrition    *Nutrition `json:"nutrition,omitempty"`
	Calories     Number     `json:"calories,omitempty"`
	Protein      Number     `json:"protein,omitempty"`
	Carbs        Number     `json:"carbs,omitempty"`
	Fat          Number     `json:"fat,omitempty"`
	PrepTime     Number     `json:"prepTime,omitempty"`
	CookTime     Number     `json:"cookTime,omitempty"`
	Servings     Number     `json:"servings,omitempty"`
}

// Macros returns the meal's nutrition regardless of shape.
func (m Meal) Macros() Nutrition {
	if m.Nutrition != nil {
		return *m.Nutrition
	}
	return Nutrition{Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fat: m.Fat}
}

// DayMeals is one day of a meal plan.
type DayMeals struct {
	Day            FlexString `json:"day"`
	Breakfast      *Meal      `json:"breakfast,omitempty"`
	Lunch          *Meal      `json:"lunch,omitempty"`
	Dinner         *Meal      `json:"dinner,omitempty"`
	Snacks         []Meal     `json:"snacks,omitempty"`
	Snack1         *Meal      `json:"snack1,omitempty"`
	Snack2         *Meal      `json:"snack2,omitempty"`
	TotalNutrition *Nutrition `json:"totalNutrition,omitempty"`
	TotalCalories  Number     `json:"totalCalories,omitempty"`
}

// MainMeals returns breakfast, lunch and dinner with their labels, skipping
// any the model left out.
func (d DayMeals) MainMeals() []LabeledMeal {
	var out []LabeledMeal
	for _, lm := range []LabeledMeal{
		{Label: "Breakfast", Meal: d.Breakfast},
		{Label: "Lunch", Meal: d.Lunch},
		{Label: "Dinner", Meal: d.Dinner},
	} {
		if lm.Meal != nil {
			out = append(out, lm)
		}
	}
	return out
}

// LabeledMeal pairs a meal with its slot name.
type LabeledMeal struct {
	Label string
	Meal  *Meal
}

// AllSnacks returns the snacks array followed by snack1 and snack2.
func (d DayMeals) AllSnacks() []Meal {
	snacks := append([]Meal{}, d.Snacks...)
	if d.Snack1 != nil {
		snacks = append(snacks, *d.Snack1)
	}
	if d.Snack2 != nil {
		snacks = append(snacks, *d.Snack2)
	}
	return snacks
}

// Totals returns the day's nutrition: the model's totals when present,
// otherwise the sum of every meal and snack.
func (d DayMeals) Totals() Nutrition {
	if d.TotalNutrition != nil {
		return *d.TotalNutrition
	}
	var sum Nutrition
	for _, lm := range d.MainMeals() {
		sum = sum.Add(lm.Meal.Macros())
	}
	for _, s := range d.AllSnacks() {
		sum = sum.Add(s.Macros())
	}
	if d.TotalCalories > 0 {
		sum.Calories = d.TotalCalories
	}
	return sum
}

// MealPlan is the model's meal reply plus the server's id and timestamp.
type MealPlan struct {
	ID            string     `json:"id"`
	Name          string     `json:"name,omitempty"`
	Title         string     `json:"title,omitempty"`
	Description   string     `json:"description,omitempty"`
	DietType      string     `json:"dietType,omitempty"`
	DailyCalories Number     `json:"dailyCalories,omitempty"`
	Days          []DayMeals `json:"days"`
	ShoppingList  StringList `json:"shoppingList,omitempty"`
	Tips          StringList `json:"tips,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// DisplayName returns the plan's name under either spelling.
func (p MealPlan) DisplayName() string {
	return firstNonEmpty(p.Name, p.Title, "Meal Plan")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
