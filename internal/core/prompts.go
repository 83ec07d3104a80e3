package core

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WorkoutSystemPrompt is the system instruction for workout generation.
const WorkoutSystemPrompt = "You are a certified personal trainer and fitness expert. Generate detailed, safe, and effective workout plans based on user preferences. Always return valid JSON format."

// MealSystemPrompt is the system instruction for meal plan generation.
const MealSystemPrompt = "You are a certified nutritionist and meal planning expert. Generate balanced, nutritious meal plans based on user preferences and fitness goals. Always return valid JSON format."

// DefaultCalorieTarget applies when neither the goal table nor the profile
// gives a target.
const DefaultCalorieTarget = 1800

var calorieTargets = map[FitnessGoal]int{
	GoalWeightLoss: 1600,
	GoalMuscleGain: 2200,
	GoalEndurance:  2000,
	GoalStrength:   2100,
}

// CalorieTarget returns the daily calorie target for a profile. A positive
// calorieGoal overrides the per-goal table.
func CalorieTarget(p UserProfile) int {
	if p.CalorieGoal != nil && *p.CalorieGoal > 0 {
		return *p.CalorieGoal
	}
	if t, ok := calorieTargets[p.FitnessGoal]; ok {
		return t
	}
	return DefaultCalorieTarget
}

// GoalText renders a goal for prose: only the first hyphen becomes a space.
func GoalText(g FitnessGoal) string {
	return strings.Replace(string(g), "-", " ", 1)
}

// EquipmentText lists equipment, or "Bodyweight only" when there is none.
func EquipmentText(equipment []string) string {
	if len(equipment) == 0 {
		return "Bodyweight only"
	}
	return strings.Join(equipment, ", ")
}

// BuildWorkoutPrompt creates the user prompt for a 5-day workout plan.
func BuildWorkoutPrompt(p UserProfile) string {
	var b strings.Builder

	b.WriteString("Generate a personalized workout plan for the user with the following profile:\n\n")
	fmt.Fprintf(&b, "Fitness Level: %s\n", p.FitnessLevel)
	fmt.Fprintf(&b, "Goal: %s\n", GoalText(p.FitnessGoal))
	fmt.Fprintf(&b, "Available Equipment: %s\n", EquipmentText(p.Equipment))
	fmt.Fprintf(&b, "Workout Duration: %d minutes\n", p.WorkoutDuration)
	if len(p.Restrictions) > 0 {
		fmt.Fprintf(&b, "Restrictions: %s\n", strings.Join(p.Restrictions, ", "))
	}

	fmt.Fprintf(&b, `
The plan should consist of a 5-day workout routine with exercises targeting different muscle groups, suitable for %s-level fitness. Include a warm-up and cool-down for each day, and sets, reps, rest times, target muscles, and a brief description of each exercise. Provide modifications for easier or more difficult variations.

Return ONLY the JSON object, in the following format:
`, p.FitnessLevel)
	b.WriteString(workoutExample(p))
	return b.String()
}

func workoutExample(p UserProfile) string {
	return fmt.Sprintf(`{
  "name": "5-Day %s Workout Plan",
  "description": "Short overview of the plan",
  "duration": "%d minutes",
  "difficulty": "%s",
  "days": [
    {
      "day": "Day 1",
      "focus": "Upper Body",
      "totalDuration": %d,
      "warmup": ["5 minutes light cardio", "Arm circles"],
      "exercises": [
        {
          "name": "Exercise Name",
          "sets": 3,
          "reps": "8-12",
          "restTime": "60-90 seconds",
          "description": "Brief exercise description",
          "targetMuscles": ["chest", "triceps"],
          "difficulty": "%s",
          "modifications": {
            "easier": "Easier variation",
            "harder": "Harder variation"
          }
        }
      ],
      "cooldown": ["Chest stretch", "Deep breathing"]
    }
  ],
  "tips": ["Stay hydrated"]
}`, titleCase(GoalText(p.FitnessGoal)), p.WorkoutDuration, p.FitnessLevel, p.WorkoutDuration, p.FitnessLevel)
}

// BuildMealPrompt creates the user prompt for a 7-day meal plan.
func BuildMealPrompt(p UserProfile) string {
	target := CalorieTarget(p)

	var b strings.Builder
	b.WriteString("Generate a 7-day meal plan for the user with the following profile:\n\n")
	fmt.Fprintf(&b, "Goal: %s\n", GoalText(p.FitnessGoal))
	fmt.Fprintf(&b, "Diet Preference: %s\n", p.DietPreference)
	fmt.Fprintf(&b, "Target Calorie Intake: %d kcal per day\n", target)
	if len(p.Restrictions) > 0 {
		fmt.Fprintf(&b, "Dietary Restrictions: %s\n", strings.Join(p.Restrictions, ", "))
	}

	b.WriteString(`
The meal plan should contain 3 main meals (Breakfast, Lunch, Dinner) and 2 snacks for each day. Focus on meals that support the user's fitness goal while following their diet preference. Provide nutritional information, ingredients and step-by-step instructions, and include a shopping list and tips.

Return ONLY the JSON object, in the following format:
`)
	b.WriteString(mealExample(p, target))
	return b.String()
}

func mealExample(p UserProfile, target int) string {
	return fmt.Sprintf(`{
  "name": "7-Day %s Meal Plan",
  "description": "Short overview of the plan",
  "dietType": "%s",
  "dailyCalories": %d,
  "days": [
    {
      "day": "Day 1",
      "breakfast": {
        "name": "Meal name",
        "ingredients": ["1 cup oats", "1 banana"],
        "instructions": ["Cook the oats", "Top with banana"],
        "nutrition": {"calories": 400, "protein": 25, "carbs": 45, "fat": 12, "fiber": 6},
        "prepTime": 5,
        "cookTime": 10,
        "servings": 1
      },
      "lunch": {"name": "Meal name", "ingredients": [], "instructions": [], "nutrition": {"calories": 500, "protein": 30, "carbs": 55, "fat": 18}, "prepTime": 10, "cookTime": 15, "servings": 1},
      "dinner": {"name": "Meal name", "ingredients": [], "instructions": [], "nutrition": {"calories": 600, "protein": 35, "carbs": 60, "fat": 20}, "prepTime": 15, "cookTime": 25, "servings": 1},
      "snacks": [
        {"name": "Snack name", "ingredients": [], "instructions": [], "nutrition": {"calories": 200, "protein": 10, "carbs": 25, "fat": 8}},
        {"name": "Snack name", "ingredients": [], "instructions": [], "nutrition": {"calories": 150, "protein": 8, "carbs": 20, "fat": 6}}
      ],
      "totalNutrition": {"calories": 1850, "protein": 108, "carbs": 205, "fat": 64}
    }
  ],
  "shoppingList": ["ingredient1", "ingredient2", "ingredient3"],
  "tips": ["Prep meals in advance"]
}`, p.DietPreference, p.DietPreference, target)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
