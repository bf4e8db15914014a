package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProfileUpdate(t *testing.T) {
	t.Run("every body field is kept", func(t *testing.T) {
		update := profileUpdate(map[string]interface{}{
			"name":      "Dr. A",
			"phone":     "555-0101",
			"education": "DDS",
		}, "a@x.com")

		assert.Equal(t, bson.M{
			"name":      "Dr. A",
			"phone":     "555-0101",
			"education": "DDS",
			"email":     "a@x.com",
		}, update)
	})

	t.Run("role in the body is stripped", func(t *testing.T) {
		update := profileUpdate(map[string]interface{}{
			"name": "Sneaky",
			"role": "admin",
		}, "a@x.com")

		assert.NotContains(t, update, "role")
		assert.Equal(t, "Sneaky", update["name"])
	})

	t.Run("email always comes from the path, not the body", func(t *testing.T) {
		update := profileUpdate(map[string]interface{}{
			"email": "other@x.com",
		}, "a@x.com")

		assert.Equal(t, "a@x.com", update["email"])
	})

	t.Run("empty body still pins the email", func(t *testing.T) {
		update := profileUpdate(nil, "a@x.com")

		assert.Equal(t, bson.M{"email": "a@x.com"}, update)
	})
}
