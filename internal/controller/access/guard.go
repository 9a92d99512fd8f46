package access

// Guard отличает администратора от остальных пользователей
type Guard struct {
	adminID int64
}

func NewGuard(adminID int64) *Guard {
	return &Guard{adminID: adminID}
}

// IsPrivileged true только для настроенного администратора; без настройки администратора нет
func (g *Guard) IsPrivileged(userID int64) bool {
	return g.adminID != 0 && userID == g.adminID
}
