//go:build integration

package testutil

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fightleague/registry/internal/domain"
	"github.com/fightleague/registry/internal/wallet"
)

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do("POST", path, body, token)
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	return env.do("GET", path, nil, token)
}

// AuthPATCH performs an authenticated PATCH request.
func (env *TestEnv) AuthPATCH(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do("PATCH", path, body, token)
}

// AuthDELETE performs an authenticated DELETE request.
func (env *TestEnv) AuthDELETE(path, token string) *http.Response {
	env.t.Helper()
	return env.do("DELETE", path, nil, token)
}

func (env *TestEnv) do(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

// DecodeBody decodes a response body into dst and closes it.
func (env *TestEnv) DecodeBody(resp *http.Response, dst interface{}) {
	env.t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		env.t.Fatalf("decode body: %v", err)
	}
}

// TestWallet is a throwaway secp256k1 key pair for signature flows.
type TestWallet struct {
	Key     *ecdsa.PrivateKey
	Address string
}

// NewTestWallet generates a fresh wallet key pair.
func (env *TestEnv) NewTestWallet() *TestWallet {
	env.t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		env.t.Fatalf("NewTestWallet: %v", err)
	}
	return &TestWallet{
		Key:     key,
		Address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
	}
}

// Sign produces a personal-sign signature over message, 27/28 recovery id as
// browser wallets emit.
func (w *TestWallet) Sign(message string) string {
	hash := wallet.PersonalSignHash(message)
	sig, err := crypto.Sign(hash.Bytes(), w.Key)
	if err != nil {
		panic(err)
	}
	sig[64] += 27
	return "0x" + fmt.Sprintf("%x", sig)
}

// RegisterFighter submits a fighter registration for the given wallet address
// (empty for wallet-less) and returns the decoded response body. The division
// is derived from the weight so the payload is always self-consistent.
func (env *TestEnv) RegisterFighter(name, walletAddr string, weight string, gender string) map[string]interface{} {
	env.t.Helper()
	wf, err := strconv.ParseFloat(weight, 64)
	if err != nil {
		env.t.Fatalf("RegisterFighter: weight %q: %v", weight, err)
	}
	division, ok := domain.ClassifyDivision(wf, gender)
	if !ok {
		env.t.Fatalf("RegisterFighter: no division for weight %s (%s)", weight, gender)
	}

	body := map[string]interface{}{
		"name":          name,
		"country":       "USA",
		"weight":        weight,
		"gender":        gender,
		"division":      division.Name,
		"wins":          0,
		"losses":        0,
		"draws":         0,
		"walletAddress": walletAddr,
	}

	resp := env.POST("/fighters/register", body, "")
	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("RegisterFighter: expected 201, got %d", resp.StatusCode)
	}

	var result map[string]interface{}
	env.DecodeBody(resp, &result)
	return result
}

// WalletLogin runs the full nonce challenge-response flow for a wallet and
// returns the raw login response.
func (env *TestEnv) WalletLogin(w *TestWallet) *http.Response {
	env.t.Helper()

	resp := env.POST("/auth/nonce", map[string]string{"walletAddress": w.Address}, "")
	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("WalletLogin: nonce: expected 200, got %d", resp.StatusCode)
	}
	var nonceBody struct {
		MessageToSign string `json:"messageToSign"`
	}
	env.DecodeBody(resp, &nonceBody)

	return env.POST("/auth/login", map[string]string{
		"walletAddress": w.Address,
		"signature":     w.Sign(nonceBody.MessageToSign),
	}, "")
}

// RegisterEmail creates an email account via the API and returns the token.
func (env *TestEnv) RegisterEmail(name, email, password, role string) string {
	env.t.Helper()
	resp := env.POST("/auth/register", map[string]interface{}{
		"name":      name,
		"email":     email,
		"password":  password,
		"user_type": role,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		env.t.Fatalf("RegisterEmail: expected 201, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("RegisterEmail: decode: %v", err)
	}
	return result.Token
}

// AdminToken inserts an admin user row and returns a JWT for it. The identity
// middleware resolves tokens against the users table, so the row must exist.
func (env *TestEnv) AdminToken() string {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	email := fmt.Sprintf("admin_%s@test.com", uuid.New().String()[:8])
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-password"), bcrypt.DefaultCost)
	if err != nil {
		env.t.Fatalf("AdminToken: hash: %v", err)
	}

	var id int64
	err = env.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ('Test Admin', $1, $2, 'ADMIN') RETURNING id`,
		email, string(hash)).Scan(&id)
	if err != nil {
		env.t.Fatalf("AdminToken: insert: %v", err)
	}

	token, err := env.JWTMgr.GenerateToken(id, "", email, domain.RoleAdmin)
	if err != nil {
		env.t.Fatalf("AdminToken: token: %v", err)
	}
	return token
}

// FighterStatus reads a fighter's status straight from the DB.
func (env *TestEnv) FighterStatus(fighterID string) string {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var status string
	err := env.Pool.QueryRow(ctx, "SELECT status FROM fighters WHERE id = $1", fighterID).Scan(&status)
	if err != nil {
		env.t.Fatalf("FighterStatus: %v", err)
	}
	return status
}

// UserRoleByWallet reads a user's role straight from the DB.
func (env *TestEnv) UserRoleByWallet(walletAddr string) string {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var role string
	err := env.Pool.QueryRow(ctx, "SELECT role FROM users WHERE wallet_address = $1", walletAddr).Scan(&role)
	if err != nil {
		env.t.Fatalf("UserRoleByWallet: %v", err)
	}
	return role
}

// CountRows returns the number of rows matching the query.
func (env *TestEnv) CountRows(query string, args ...interface{}) int {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var n int
	if err := env.Pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		env.t.Fatalf("CountRows: %v", err)
	}
	return n
}
