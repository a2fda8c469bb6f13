package auth

import "testing"

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(7, "jdoe", "technician")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("Expected user id 7, got %d", claims.UserID)
	}
	if claims.Username != "jdoe" {
		t.Errorf("Expected username jdoe, got %s", claims.Username)
	}
	if claims.Role != "technician" {
		t.Errorf("Expected role technician, got %s", claims.Role)
	}
}

func TestValidateToken_Garbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Errorf("Expected error for malformed token")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}

	if !CheckPassword(hash, "s3cret") {
		t.Errorf("Expected matching password to verify")
	}
	if CheckPassword(hash, "wrong") {
		t.Errorf("Expected wrong password to fail")
	}
}
