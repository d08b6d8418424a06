package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword возвращает bcrypt-хэш пароля со стандартной стоимостью.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// ComparePassword проверяет пароль против сохраненного bcrypt-хэша.
func ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
