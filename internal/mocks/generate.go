// Package mocks provides mock implementations for testing the portal's storage ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockBroker := mocks.NewMockCredentialBroker(ctrl)
//	mockBroker.EXPECT().Assume(gomock.Any(), gomock.Any(), gomock.Any()).Return(cred, nil)
package mocks

// Generate mock for CredentialBroker interface from internal/ports.
// This creates MockCredentialBroker with: Assume
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=credential_broker_mock.go github.com/tripgate/portal-api/internal/ports CredentialBroker

// Generate mock for DocumentStore interface from internal/ports.
// This creates MockDocumentStore with: List, Put, Delete, PresignGet
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=document_store_mock.go github.com/tripgate/portal-api/internal/ports DocumentStore

// Generate mock for RelationshipDirectory interface from internal/ports.
// This creates MockRelationshipDirectory with: CustomersFor
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=relationship_directory_mock.go github.com/tripgate/portal-api/internal/ports RelationshipDirectory

// Generate mock for ApplicationRegistry interface from internal/ports.
// This creates MockApplicationRegistry with: Submit, GetByID, ListByStatus
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=application_registry_mock.go github.com/tripgate/portal-api/internal/ports ApplicationRegistry
