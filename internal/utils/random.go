package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/shiftguard/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Daniel", "Karen", "Matthew", "Lisa", "Anthony", "Nancy",
}
var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Taylor",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var digits = "0123456789"

func GenerateUsernameFromName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := strings.Join(parts, ".")

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var roles = []domain.Role{
	domain.RoleEmployee,
	domain.RoleEmployee,
	domain.RoleEmployee, // weight towards plain employees
	domain.RoleSupervisor,
	domain.RoleManager,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var qualificationPool = []string{
	"first_aid", "forklift", "food_safety", "barista", "keyholder", "cash_handling",
}

func GenerateRandomQualifications() []string {
	n := rand.Intn(len(qualificationPool) + 1)
	shuffled := append([]string{}, qualificationPool...)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// GenerateRandomAvailability declares windows on a random subset of weekdays.
// Roughly a third of employees come back with no declaration at all, which
// the engine treats as unrestricted.
func GenerateRandomAvailability() map[string][]domain.TimeRange {
	if rand.Intn(3) == 0 {
		return map[string][]domain.TimeRange{}
	}

	availability := map[string][]domain.TimeRange{}
	for _, day := range weekdays {
		if rand.Intn(2) == 0 {
			continue
		}
		startHour := rand.Intn(10) + 6 // 06..15
		endHour := startHour + rand.Intn(8) + 4
		if endHour > 23 {
			endHour = 23
		}
		availability[day] = []domain.TimeRange{{
			Start: fmt.Sprintf("%02d:00:00", startHour),
			End:   fmt.Sprintf("%02d:00:00", endHour),
		}}
	}
	return availability
}

func GenerateRandomEmployee(password string, emailDomainName string) (*domain.Employee, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var maxHours *float64
	if rand.Intn(2) == 0 {
		hours := float64(rand.Intn(21) + 20) // 20..40
		maxHours = &hours
	}

	employee := &domain.Employee{
		Username:        username,
		PasswordHash:    string(passwordHash),
		FullName:        fullName,
		Email:           username + "@" + emailDomainName,
		Role:            GenerateRandomRole(),
		Qualifications:  GenerateRandomQualifications(),
		Availability:    GenerateRandomAvailability(),
		MaxHoursPerWeek: maxHours,
		IsActive:        true,
	}

	return employee, nil
}

// GenerateRandomShift produces a shift on the given date. About one shift in
// six runs overnight into the next day.
func GenerateRandomShift(departmentID int64, date time.Time) *domain.Shift {
	startHour := rand.Intn(16) + 6 // 06..21
	duration := rand.Intn(6) + 4   // 4..9 hours
	endHour := (startHour + duration) % 24

	var required []string
	if rand.Intn(3) == 0 {
		required = []string{qualificationPool[rand.Intn(len(qualificationPool))]}
	}

	return &domain.Shift{
		Date:                   date,
		StartTime:              fmt.Sprintf("%02d:00:00", startHour),
		EndTime:                fmt.Sprintf("%02d:00:00", endHour),
		DepartmentID:           departmentID,
		RequiredStaff:          int32(rand.Intn(3) + 1),
		RequiredQualifications: required,
	}
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
