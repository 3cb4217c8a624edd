package contextkeys

type contextKey string

const (
	// UserNameKey — имя актора из заголовка X-User-Name.
	// Полноценной аутентификации в системе нет, имя пользователя
	// используется только для записи в журнал истории.
	UserNameKey contextKey = "UserName"
)
