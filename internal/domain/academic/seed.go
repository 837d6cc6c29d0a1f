package academic

// DefaultSeed returns the demo data set: three courses, three students,
// two professors and three classrooms. Nothing is scheduled or enrolled.
func DefaultSeed() Snapshot {
	return Snapshot{
		Students: []StudentRecord{
			{ID: "EST001", Name: "Juan", Surname: "Pérez"},
			{ID: "EST002", Name: "Ana", Surname: "López"},
			{ID: "EST003", Name: "Carlos", Surname: "Gómez"},
		},
		Professors: []ProfessorRecord{
			{ID: "PRO001", Name: "María", Surname: "García"},
			{ID: "PRO002", Name: "Luis", Surname: "Martínez"},
		},
		Classrooms: []ClassroomRecord{
			{ID: "SAL001", Name: "Aula 101", Capacity: 30},
			{ID: "SAL002", Name: "Aula 102", Capacity: 20},
			{ID: "SAL003", Name: "Laboratorio 201", Capacity: 15},
		},
		Courses: []CourseRecord{
			{ID: "MAT001", Name: "Matemáticas", Credits: 4},
			{ID: "FIS001", Name: "Física", Credits: 3},
			{ID: "QUI001", Name: "Química", Credits: 3},
		},
	}
}
