// Copyright (c) 2026 Pivora. All rights reserved.
// Author: lan.buihoang.vn@gmail.com

// Package user covers the console's user administration screens: listing
// accounts, editing profiles, and assigning roles.
package user

import (
	"time"

	"github.com/buihoanglan/pivora/pkg/pointer"
)

// Role is the coarse permission tier assigned to an account.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// User is a console account as the backend reports it.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        Role       `json:"role"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// UpdateInput is the payload for editing a user's profile.
type UpdateInput struct {
	DisplayName string `json:"displayName,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

const (
	FieldEmail       = "email"
	FieldDisplayName = "displayName"
	FieldRole        = "role"
)

// # Backend DTO

type userDTO struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"displayName"`
	Role        *string    `json:"role"`
	Active      *bool      `json:"active"`
	CreatedAt   *time.Time `json:"createdAt"`
	LastLoginAt *time.Time `json:"lastLoginAt"`
}

func fromUserDTO(dto userDTO) *User {
	return &User{
		ID:          dto.ID,
		Email:       dto.Email,
		DisplayName: pointer.Val(dto.DisplayName),
		Role:        Role(pointer.Fallback(dto.Role, string(RoleViewer))),
		Active:      pointer.Fallback(dto.Active, true),
		CreatedAt:   pointer.Val(dto.CreatedAt),
		LastLoginAt: dto.LastLoginAt,
	}
}
