/*
Package repute contains implementation of the Repute DAO contract.

Repute DAO contract keeps reputation scores of wallets. Holders of the program
token vote for each other, each vote moves the target's score by one. Score
maps to a role: the configured tier with the highest threshold the score
reaches. Admin of the program configures roles, cooldown period between
repeated votes and may reset scores.

# Contract notifications

Initialized notification. This notification is produced when program state is
created either on deployment or by Initialize method.

	Initialized
	  - name: admin
	    type: Hash160
	  - name: tokenMint
	    type: Hash160
	  - name: cooldownPeriod
	    type: Integer

AdminChanged notification. This notification is produced when admin
capability is handed over by SetAdmin method.

	AdminChanged
	  - name: previous
	    type: Hash160
	  - name: admin
	    type: Hash160

CooldownChanged notification. This notification is produced by SetCooldown
method.

	CooldownChanged
	  - name: period
	    type: Integer

RoleConfigured notification. This notification is produced when a role is
created or overwritten by ConfigureRole method.

	RoleConfigured
	  - name: index
	    type: Integer
	  - name: name
	    type: String
	  - name: threshold
	    type: Integer

Vote notification. This notification is produced for each successful vote.
Score is the target's score after the vote.

	Vote
	  - name: voter
	    type: Hash160
	  - name: target
	    type: Hash160
	  - name: delta
	    type: Integer
	  - name: score
	    type: Integer

ScoreReset notification. This notification is produced when admin resets the
score of the target.

	ScoreReset
	  - name: target
	    type: Hash160
*/
package repute

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'state' -> std.Serialize(ProgramState)
   admin, token contract, cooldown period and role count, at most 255 roles fit a one-byte counter
 - 'role<index>' -> std.Serialize(Role)
   role by its one-byte index
 - 'user-score<target>' -> std.Serialize(UserScore)
   reputation of the target wallet
 - 'vote-record<voter><target>' -> std.Serialize(VoteRecord)
   time of the last vote of the voter for the target

# Votes
Vote records are never deleted, so the cooldown survives score resets.

# Roles
Roles are not required to have thresholds growing with index.
*/
