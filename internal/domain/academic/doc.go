// Package academic holds the scheduling core: the registry of students,
// professors, courses and classrooms, and the operations that relate them.
//
// The Registry is an arena. Entities refer to each other by ID, and every
// two-sided relation is changed by one Registry method, so both sides stay
// consistent:
//
//   - Course.professor and Professor.courses (AssignProfessor)
//   - Course.classroom and the classroom's booking ledger (AssignClassroom)
//   - Course.roster and Student.courses (Enroll, Withdraw)
//
// Each operation checks all of its preconditions before it changes anything,
// so a rejected call leaves the registry exactly as it was.
//
// # Rules
//
//   - A classroom never holds two overlapping bookings.
//   - A course with a classroom never enrolls more students than the
//     classroom seats. Courses without a classroom are unbounded.
//   - A student's courses never overlap in time.
//   - A course has at most one professor, and keeps the first one assigned.
//   - Grades lie in [0, 5] and are recorded only for enrolled students.
//     An average of 3 or more passes.
package academic
