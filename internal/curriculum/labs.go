package curriculum

// Lab is one hands-on exercise with its infrastructure template.
type Lab struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Template    string `json:"template"`
}

// Labs returns the lab exercises in order.
func Labs() []Lab {
	return []Lab{
		{
			Title:       "Production-Ready Multi-Tier VPC",
			Description: "Build a VPC with public, private, and database subnets across two availability zones, with security groups enforcing tier-to-tier traffic only.",
			Template:    cloudFormationVPC,
		},
	}
}

const cloudFormationVPC = `# AWS Architect Masterclass: Production-Ready Multi-Tier VPC
# Features: Public, Private, and Database Subnets across 2 AZs.
AWSTemplateFormatVersion: '2010-09-09'
Description: 'VPC with Multi-Tier Isolation and High Availability'

Parameters:
  VpcCIDR:
    Type: String
    Default: 10.0.0.0/16
  ProjectName:
    Type: String
    Default: ArchitectMasterclass

Resources:
  VPC:
    Type: AWS::EC2::VPC
    Properties:
      CidrBlock: !Ref VpcCIDR
      EnableDnsSupport: true
      EnableDnsHostnames: true
      Tags:
        - Key: Name
          Value: !Sub '${ProjectName}-VPC'

  # --- NETWORK ISOLATION LOGIC ---
  # Tier 1: Public Subnet (ALBs, NAT Gateways)
  PublicSubnetA:
    Type: AWS::EC2::Subnet
    Properties:
      VpcId: !Ref VPC
      AvailabilityZone: !Select [ 0, !GetAZs '' ]
      CidrBlock: 10.0.1.0/24
      MapPublicIpOnLaunch: true

  # Tier 2: App Subnet (Private - Fargate/EC2)
  PrivateSubnetA:
    Type: AWS::EC2::Subnet
    Properties:
      VpcId: !Ref VPC
      AvailabilityZone: !Select [ 0, !GetAZs '' ]
      CidrBlock: 10.0.2.0/24

  # Tier 3: Data Subnet (Strict Private - Aurora/RDS)
  DataSubnetA:
    Type: AWS::EC2::Subnet
    Properties:
      VpcId: !Ref VPC
      AvailabilityZone: !Select [ 0, !GetAZs '' ]
      CidrBlock: 10.0.3.0/24

  # --- SECURITY GROUP LOGIC ---
  # Logic: Only allow traffic from Tier 1 to Tier 2, and Tier 2 to Tier 3.
  # This prevents direct access to the database from the public internet.

  AppSecurityGroup:
    Type: AWS::EC2::SecurityGroup
    Properties:
      GroupDescription: Allow traffic from Public Tier only
      VpcId: !Ref VPC
      SecurityGroupIngress:
        - IpProtocol: tcp
          FromPort: 80
          ToPort: 80
          CidrIp: 10.0.1.0/24 # Restricted to Public Subnet range

  DatabaseSecurityGroup:
    Type: AWS::EC2::SecurityGroup
    Properties:
      GroupDescription: Allow traffic from App Tier only
      VpcId: !Ref VPC
      SecurityGroupIngress:
        - IpProtocol: tcp
          FromPort: 5432
          ToPort: 5432
          SourceSecurityGroupId: !Ref AppSecurityGroup # Only the App Tier can talk to DB

Outputs:
  VPCId:
    Description: The VPC ID
    Value: !Ref VPC
`
