//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/finance-tracker/dashboard/internal/integration/persistence/model"
)

const sessionCookieName = "jwt"

// envelopes whose "_id" is remembered for {{<name>_id}} placeholders.
var envelopes = []struct {
	key  string
	name string
}{
	{key: "account", name: "account"},
	{key: "bill", name: "bill"},
	{key: "expense", name: "expense"},
	{key: "goal", name: "goal"},
	{key: "transaction", name: "transaction"},
	{key: "newTransaction", name: "transaction"},
	{key: "user", name: "user"},
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.suite == nil || t.server == nil {
		return errors.New("test server is not running")
	}
	return nil
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return t.db.DbConn.Create(user).Error
}

func (t *testContext) findUser(email string) (*model.UserModel, error) {
	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user %s not found: %w", email, err)
	}
	return &user, nil
}

func (t *testContext) iAmLoggedInAs(email string) error {
	user, err := t.findUser(email)
	if err != nil {
		return err
	}

	token, err := t.tokens.GenerateSessionToken(context.Background(), user.ID, user.Email, user.Role)
	if err != nil {
		return fmt.Errorf("failed to generate session token: %w", err)
	}
	t.accessToken = token.Token
	t.ids["user"] = user.ID.String()
	return nil
}

func (t *testContext) anAccountExistsWithBalance(bankName, balance string) error {
	userID, ok := t.ids["user"]
	if !ok {
		return errors.New("no user is logged in")
	}
	return t.createAccount(uuid.MustParse(userID), bankName, balance)
}

func (t *testContext) anAccountOfUserExistsWithBalance(bankName, email, balance string) error {
	user, err := t.findUser(email)
	if err != nil {
		return err
	}
	return t.createAccount(user.ID, bankName, balance)
}

func (t *testContext) createAccount(userID uuid.UUID, bankName, balance string) error {
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("invalid balance %q: %w", balance, err)
	}

	now := time.Now().UTC()
	account := &model.AccountModel{
		ID:            uuid.New(),
		UserID:        userID,
		AccountType:   "checking",
		BankName:      bankName,
		BranchName:    "Main",
		AccountNumber: "0001",
		Balance:       amount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := t.db.DbConn.Create(account).Error; err != nil {
		return err
	}
	t.ids["account"] = account.ID.String()
	return nil
}

func (t *testContext) anExpenseWasSpentDaysAgo(title, amount, category string, days int) error {
	userID, ok := t.ids["user"]
	if !ok {
		return errors.New("no user is logged in")
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	now := time.Now().UTC()
	expense := &model.ExpenseModel{
		ID:        uuid.New(),
		UserID:    uuid.MustParse(userID),
		Title:     title,
		Amount:    value,
		Category:  category,
		Date:      now.AddDate(0, 0, -days),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.db.DbConn.Create(expense).Error; err != nil {
		return err
	}
	t.ids["expense"] = expense.ID.String()
	return nil
}

func (t *testContext) aPasswordResetTokenExistsFor(email string) error {
	token, err := t.createResetToken(email, time.Hour)
	if err != nil {
		return err
	}
	t.resetToken = token
	return nil
}

func (t *testContext) anExpiredPasswordResetTokenExistsFor(email string) error {
	token, err := t.createResetToken(email, -time.Hour)
	if err != nil {
		return err
	}
	t.expiredToken = token
	return nil
}

func (t *testContext) createResetToken(email string, validFor time.Duration) (string, error) {
	user, err := t.findUser(email)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	token := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		Token:     "reset-" + uuid.NewString(),
		UserID:    user.ID,
		Email:     email,
		ExpiresAt: now.Add(validFor),
		CreatedAt: now,
	}
	if err := t.db.DbConn.Create(token).Error; err != nil {
		return "", err
	}
	return token.Token, nil
}

func (t *testContext) theEmailProviderIsFailing() error {
	t.emailProvider.SetResponse(http.MethodPost, "/emails", http.StatusInternalServerError, map[string]any{
		"name":    "internal_server_error",
		"message": "provider unavailable",
	})
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil, "")
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload, "application/json")
}

func (t *testContext) iSendAMultipartRequestToWithFields(method, path string, table *godog.Table) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("expected field and value columns, got %d cells", len(row.Cells))
		}
		field, value := row.Cells[0].Value, t.replacePlaceholders(row.Cells[1].Value)

		if name, ok := strings.CutPrefix(value, "file:"); ok {
			part, err := writer.CreateFormFile(field, name)
			if err != nil {
				return err
			}
			if _, err := part.Write([]byte("\x89PNG\r\n\x1a\n")); err != nil {
				return err
			}
			continue
		}
		if err := writer.WriteField(field, value); err != nil {
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return t.executeRequest(method, t.replacePlaceholders(path), buf.Bytes(), writer.FormDataContentType())
}

func (t *testContext) replacePlaceholders(content string) string {
	for name, id := range t.ids {
		content = strings.ReplaceAll(content, "{{"+name+"_id}}", id)
	}
	content = strings.ReplaceAll(content, "{{reset_token}}", t.resetToken)
	content = strings.ReplaceAll(content, "{{expired_reset_token}}", t.expiredToken)
	content = strings.ReplaceAll(content, "{{today}}", time.Now().UTC().Format("2006-01-02"))
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte, contentType string) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		cookies: resp.Cookies(),
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	for _, envelope := range envelopes {
		if object, ok := responseBody[envelope.key].(map[string]any); ok {
			if id, ok := object["_id"].(string); ok {
				t.ids[envelope.name] = id
			}
		}
	}

	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	_, err := t.responseObject()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBeNull(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if value := getFieldValue(body, field); value != nil {
		return fmt.Errorf("field '%s' expected null, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not an array: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseShouldSetTheSessionCookie() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	for _, cookie := range t.response.cookies {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			if !cookie.HttpOnly {
				return errors.New("session cookie is not HttpOnly")
			}
			return nil
		}
	}
	return fmt.Errorf("response did not set the %q cookie", sessionCookieName)
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.countRows(quantity, table, nil)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}
	return t.countRows(quantity, table, criteria)
}

func (t *testContext) countRows(quantity int, table string, criteria map[string]any) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceivedEmails(count int) error {
	requests := t.emailProvider.Requests(http.MethodPost, "/emails")
	if len(requests) != count {
		return fmt.Errorf("expected %d emails, got %d", count, len(requests))
	}
	return nil
}

func (t *testContext) theLastEmailShouldBeSentTo(address string) error {
	requests := t.emailProvider.Requests(http.MethodPost, "/emails")
	if len(requests) == 0 {
		return errors.New("no email was sent")
	}

	to, _ := requests[len(requests)-1]["to"].([]any)
	for _, recipient := range to {
		if recipient == address {
			return nil
		}
	}
	return fmt.Errorf("last email was sent to %v, want %s", to, address)
}

func (t *testContext) theCacheShouldContainKeysMatching(count int, pattern string) error {
	keys, err := t.redis.Keys(t.replacePlaceholders(pattern))
	if err != nil {
		return err
	}
	if len(keys) != count {
		return fmt.Errorf("expected %d cache keys matching %s, got %d: %v", count, pattern, len(keys), keys)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	var field any = object

	for _, currentField := range strings.Split(dotSeparatedField, ".") {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			arr, ok := field.([]any)
			if !ok || i >= len(arr) {
				return nil
			}
			field = arr[i]
			continue
		}

		m, ok := field.(map[string]any)
		if !ok {
			return nil
		}
		field = m[currentField]
	}

	return field
}
