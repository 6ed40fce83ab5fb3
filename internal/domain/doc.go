// Package domain defines the core entities of the pet growth and
// economy engine: pets, inventory items, the achievement catalog, and
// the account currency balance.
package domain
